// Command issuecred generates a credential for a category and appends it to
// the credential file, for manual issuance outside the payment flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mglsites/vipgate/internal/adapter/driven/credfile"
	"github.com/mglsites/vipgate/internal/application"
	"github.com/mglsites/vipgate/internal/domain/model"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("issuecred", flag.ContinueOnError)
	fs.SetOutput(stderr)

	category := fs.String("category", "", "Credential category (pack, casino, bet, temp)")
	filePath := fs.String("file", "credentials.json", "Path to credential file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *category == "" {
		fmt.Fprintln(stdout, "Usage: issuecred -category <pack|casino|bet|temp> [-file <path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: category")
	}

	cat, ok := model.ParseCategory(*category)
	if !ok {
		return fmt.Errorf("unknown category %q", *category)
	}

	// Allow overriding the file path via env var if not explicitly set via flag.
	if path := os.Getenv("VIPGATE_CREDENTIALS_PATH"); path != "" && *filePath == "credentials.json" {
		*filePath = path
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	store, err := credfile.Open(*filePath, logger)
	if err != nil {
		return fmt.Errorf("failed to open credential file: %w", err)
	}

	username, password := application.GeneratePair(cat)
	cred := model.Credential{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := store.Append(context.Background(), cat, cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	fmt.Fprintf(stdout, "Issued %s credential (valid %s):\n", cat, model.CredentialTTL)
	fmt.Fprintf(stdout, "  Username: %s\n", username)
	fmt.Fprintf(stdout, "  Password: %s\n", password)
	return nil
}
