package application

import "github.com/mglsites/vipgate/internal/domain/model"

// GenericDashboardPath is the fallback landing page for categories without a
// dedicated section.
const GenericDashboardPath = "/generic-dashboard.html"

// redirectTargets is the fixed category -> landing page table.
var redirectTargets = map[model.Category]string{
	model.CategoryPack:   "/packvip-page.html",
	model.CategoryCasino: "/casino-page.html",
	model.CategoryBet:    "/bet-page.html",
	model.CategoryTemp:   GenericDashboardPath,
}

// redirectFor returns the landing page for the category and whether the
// category had a dedicated mapping. Callers warn on the fallback case.
func redirectFor(cat model.Category) (string, bool) {
	if target, ok := redirectTargets[cat]; ok {
		return target, true
	}
	return GenericDashboardPath, false
}
