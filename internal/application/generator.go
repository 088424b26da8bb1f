package application

import (
	"fmt"
	"math/rand/v2"

	"github.com/mglsites/vipgate/internal/domain/model"
)

// passwordPrefixes maps each category to its two-letter password code.
// Unknown categories fall back to "tmp".
var passwordPrefixes = map[model.Category]string{
	model.CategoryPack:   "pk",
	model.CategoryCasino: "cs",
	model.CategoryBet:    "bt",
}

// GeneratePair produces a fresh username/password pair for the category.
// Username: fixed "MGL" prefix + title-cased category + 5-digit suffix.
// Password: category code + 2 random lowercase letters + 3-digit number.
// No uniqueness check is performed against existing records; collisions are a
// known, accepted weakness of the scheme.
func GeneratePair(cat model.Category) (username, password string) {
	username = fmt.Sprintf("MGL%s%d", cat.Title(), rand.IntN(90000)+10000)

	prefix, ok := passwordPrefixes[cat]
	if !ok {
		prefix = "tmp"
	}
	letters := string([]byte{
		byte('a' + rand.IntN(26)),
		byte('a' + rand.IntN(26)),
	})
	password = fmt.Sprintf("%s%s%d", prefix, letters, rand.IntN(900)+100)

	return username, password
}
