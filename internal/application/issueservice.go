package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mglsites/vipgate/internal/domain/model"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

// IssuedCredential is the outcome of a credential-issuing flow.
type IssuedCredential struct {
	Category   model.Category
	Credential model.Credential
	Redirect   string
}

// IssueService creates credentials on payment confirmation and free-tier
// registration. Notifications are best-effort: failures are logged and never
// propagate to the caller.
type IssueService struct {
	creds  driven.CredentialStore
	admin  driven.AdminNotifier
	users  driven.UserNotifier
	logger *slog.Logger

	now func() time.Time
}

// NewIssueService creates an IssueService.
func NewIssueService(creds driven.CredentialStore, admin driven.AdminNotifier, users driven.UserNotifier, logger *slog.Logger) *IssueService {
	return &IssueService{
		creds:  creds,
		admin:  admin,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// CategoryFromProduct infers the credential category from free-text product
// metadata. The matching is deliberately a small fixed heuristic with an
// explicit temp fallback; it is not a product catalog.
func (s *IssueService) CategoryFromProduct(product string) model.Category {
	upper := strings.ToUpper(product)

	switch {
	case strings.Contains(upper, "PACK"),
		strings.Contains(upper, "CASINOBOT") && strings.Contains(upper, "SPORTINGBOT"):
		return model.CategoryPack
	case strings.Contains(upper, "CASINOBOT"):
		return model.CategoryCasino
	case strings.Contains(upper, "SPORTINGBOT"):
		return model.CategoryBet
	default:
		s.logger.Warn("product not mapped to a known category, using temp", "product", product)
		return model.CategoryTemp
	}
}

// ConfirmPayment handles a payment-confirmation event: infers the category,
// generates and persists a credential, and notifies the operator.
func (s *IssueService) ConfirmPayment(ctx context.Context, name, phone, product string) (*IssuedCredential, error) {
	if name == "" || phone == "" || product == "" {
		return nil, fmt.Errorf("%w: name, phone and product are required", ErrMissingFields)
	}

	cat := s.CategoryFromProduct(product)
	issued, err := s.issue(ctx, cat)
	if err != nil {
		return nil, err
	}

	adminMsg := fmt.Sprintf(
		"New sale confirmed! 🎉\nProduct: %s\nName: %s\nPhone: %s\n---\nGenerated credential (valid for 12 hours):\nUser: `%s`\nPassword: `%s`\n(internal category: %s)",
		product, name, phone, issued.Credential.Username, issued.Credential.Password, cat,
	)
	if err := s.admin.Send(ctx, adminMsg); err != nil {
		s.logger.Error("admin notification failed", "error", err)
	}

	return issued, nil
}

// RegisterFree handles the free-tier registration variant: issues a temp
// credential, mails it to the registrant and notifies the operator.
func (s *IssueService) RegisterFree(ctx context.Context, name, email, groupName string) (*IssuedCredential, error) {
	if name == "" || email == "" || groupName == "" {
		return nil, fmt.Errorf("%w: name, email and group name are required", ErrMissingFields)
	}

	issued, err := s.issue(ctx, model.CategoryTemp)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour access to %s is ready. Credentials (valid for 12 hours):\n\nUser: %s\nPassword: %s\n",
		name, groupName, issued.Credential.Username, issued.Credential.Password,
	)
	if err := s.users.Send(ctx, email, "Your access credentials", body); err != nil {
		s.logger.Error("user notification failed", "email", email, "error", err)
	}

	adminMsg := fmt.Sprintf("New free registration\nName: %s\nEmail: %s\nGroup: %s\nUser: `%s`",
		name, email, groupName, issued.Credential.Username)
	if err := s.admin.Send(ctx, adminMsg); err != nil {
		s.logger.Error("admin notification failed", "error", err)
	}

	return issued, nil
}

// issue generates a credential for the category and persists it.
func (s *IssueService) issue(ctx context.Context, cat model.Category) (*IssuedCredential, error) {
	username, password := GeneratePair(cat)
	cred := model.Credential{
		Username:  username,
		Password:  password,
		CreatedAt: s.now(),
	}

	if err := s.creds.Append(ctx, cat, cred); err != nil {
		return nil, fmt.Errorf("persist credential: %w", err)
	}
	s.logger.Info("credential issued", "category", cat, "username", username)

	redirect, _ := redirectFor(cat)
	return &IssuedCredential{Category: cat, Credential: cred, Redirect: redirect}, nil
}
