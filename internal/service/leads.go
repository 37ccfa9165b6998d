package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/leadsite/api/internal/attribution"
	"github.com/octobees/leadsite/api/internal/dto"
	"github.com/octobees/leadsite/api/internal/entity"
	"github.com/octobees/leadsite/api/internal/repository"
)

// Maximum lengths for optional contact-form fields. Submissions exceeding
// them are rejected, not truncated.
const (
	MaxPhoneLen   = 50
	MaxCompanyLen = 200
	MaxSourceLen  = 100
	MaxMessageLen = 5000
)

// The local part accepts any non-space run; rejecting unusual but
// deliverable addresses would drop real leads. The domain is held to the
// dotted shape after IDNA conversion.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// ValidationError indicates the submission payload is invalid. The message
// is safe to return to the caller verbatim.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// LeadsService holds the intake and dashboard logic over the leads store.
type LeadsService struct {
	repo        repository.LeadsRepository
	phoneRegion string
}

// NewLeadsService creates a new instance of LeadsService. phoneRegion is the
// default region for parsing national phone numbers.
func NewLeadsService(repo repository.LeadsRepository, phoneRegion string) *LeadsService {
	region := strings.ToUpper(strings.TrimSpace(phoneRegion))
	if region == "" {
		region = "US"
	}
	return &LeadsService{repo: repo, phoneRegion: region}
}

// Submit validates a public form submission, normalizes its attribution and
// phone fields, and stores the lead with status New. Validation
// short-circuits: the first failing check wins.
func (s *LeadsService) Submit(ctx context.Context, req dto.CreateLeadRequest) (int64, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" {
		return 0, ValidationError{Message: "Name and email are required"}
	}
	if !validEmail(email) {
		return 0, ValidationError{Message: "Invalid email"}
	}
	if utf8.RuneCountInString(req.Phone) > MaxPhoneLen {
		return 0, ValidationError{Message: "Phone too long"}
	}
	if utf8.RuneCountInString(req.Company) > MaxCompanyLen {
		return 0, ValidationError{Message: "Company too long"}
	}
	if utf8.RuneCountInString(req.Source) > MaxSourceLen {
		return 0, ValidationError{Message: "Source too long"}
	}
	if utf8.RuneCountInString(req.Message) > MaxMessageLen {
		return 0, ValidationError{Message: "Message too long"}
	}

	lead := repository.NewLead{
		Name:        name,
		Email:       email,
		Phone:       optional(s.normalizePhone(req.Phone)),
		Company:     optional(req.Company),
		Source:      optional(req.Source),
		Message:     optional(req.Message),
		UTMSource:   attribution.Normalize(req.UTMSource),
		UTMMedium:   optional(req.UTMMedium),
		UTMCampaign: optional(req.UTMCampaign),
	}

	id, err := s.repo.Insert(ctx, lead)
	if err != nil {
		return 0, fmt.Errorf("store lead: %w", err)
	}
	return id, nil
}

// List returns one page of leads plus exact pagination metadata.
func (s *LeadsService) List(ctx context.Context, filter dto.ListFilter) (*dto.LeadPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Lead{}
	}

	return &dto.LeadPage{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Summary reports lead counts per status. Every status appears, zero or not.
func (s *LeadsService) Summary(ctx context.Context) (*dto.StatusSummary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.StatusSummary{}
	for _, status := range entity.Statuses {
		count := counts[status]
		summary.Total += count
		switch status {
		case entity.StatusNew:
			summary.New = count
		case entity.StatusContacted:
			summary.Contacted = count
		case entity.StatusQualified:
			summary.Qualified = count
		case entity.StatusWon:
			summary.Won = count
		case entity.StatusLost:
			summary.Lost = count
		}
	}
	return summary, nil
}

// Campaigns aggregates stored attribution sources into the four reporting
// channels. Custom labels, including ones written under older normalization
// rules, all land in other.
func (s *LeadsService) Campaigns(ctx context.Context) (*dto.CampaignSummary, error) {
	counts, err := s.repo.CountBySource(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.CampaignSummary{}
	for source, count := range counts {
		switch attribution.Bucket(source) {
		case attribution.ChannelGoogle:
			summary.Google += count
		case attribution.ChannelMeta:
			summary.Meta += count
		case attribution.ChannelOrganic:
			summary.Organic += count
		default:
			summary.Other += count
		}
		summary.Total += count
	}
	return summary, nil
}

// Detail fetches a single lead by id, including the free-text message.
func (s *LeadsService) Detail(ctx context.Context, id int64) (*entity.Lead, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus moves one lead to a new pipeline status. Re-applying the
// current status is a no-op that still reports success.
func (s *LeadsService) UpdateStatus(ctx context.Context, id int64, status string) error {
	parsed := entity.Status(status)
	if !parsed.Valid() {
		return ValidationError{Message: "Invalid status"}
	}
	return s.repo.UpdateStatus(ctx, id, parsed)
}

// validEmail applies the basic local@domain.tld shape check. The domain is
// converted through IDNA first so internationalized domains pass.
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil || ascii == "" {
		return false
	}
	return emailPattern.MatchString(local + "@" + ascii)
}

// normalizePhone formats a submitted phone number as E.164 when it parses as
// a valid number, and keeps the raw input otherwise. Contact info is never
// dropped over formatting.
func (s *LeadsService) normalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	number, err := phonenumbers.Parse(trimmed, s.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
