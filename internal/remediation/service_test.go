package remediation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vayva/internal/merchant/models"
	"vayva/internal/remediation"
	merchantStore "vayva/internal/merchant/store"
	remediationStore "vayva/internal/remediation/store"
	id "vayva/pkg/domain"
	dErrors "vayva/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	facts   *merchantStore.Memory
	log     *remediationStore.Memory
	service *remediation.Service
	ctx     context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.facts = merchantStore.NewMemory()
	s.log = remediationStore.NewMemory()
	s.service = remediation.NewService(s.facts, s.log)
	s.ctx = context.Background()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) seedBareMerchant() id.MerchantID {
	merchantID := id.MerchantID(uuid.New())
	s.facts.PutStore(models.StoreRecord{
		MerchantID:    merchantID,
		Name:          "Acme Foods",
		Slug:          "acme-foods",
		Email:         "owner@acme.test",
		PublishStatus: models.PublishStatusDraft,
	})
	return merchantID
}

func (s *ServiceSuite) TestRunAppliesAllFixes() {
	merchantID := s.seedBareMerchant()

	results, err := s.service.Run(s.ctx, merchantID, "corr-1")
	s.Require().NoError(err)

	// One template fix plus one per policy type.
	s.Require().Len(results, 1+len(models.PolicyTypes))
	s.Equal(remediation.FixSelectDefaultTemplate, results[0].FixCode)
	for i, policyType := range models.PolicyTypes {
		s.Equal(remediation.FixPublishPolicy(policyType), results[i+1].FixCode)
	}
	for _, result := range results {
		s.Equal(remediation.OutcomeApplied, result.Outcome)
	}

	// Facts actually changed.
	sel, err := s.facts.FindTemplateSelection(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Equal(remediation.DefaultTemplateID, sel.TemplateID)

	policies, err := s.facts.ListPolicies(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Len(policies, len(models.PolicyTypes))
	for _, policy := range policies {
		s.Equal(models.PolicyStatusPublished, policy.Status)
		s.NotEmpty(policy.Body)
	}

	// Every attempt is logged under the run's correlation ID.
	entries, err := s.log.ListByMerchant(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Require().Len(entries, len(results))
	for _, entry := range entries {
		s.Equal("corr-1", entry.CorrelationID)
		s.Equal(remediation.OutcomeApplied, entry.Outcome)
		s.NotEmpty(entry.ID)
	}
}

// TestRunIsIdempotent verifies a second run performs zero writes once the
// facts are satisfied.
func (s *ServiceSuite) TestRunIsIdempotent() {
	merchantID := s.seedBareMerchant()

	first, err := s.service.Run(s.ctx, merchantID, "corr-1")
	s.Require().NoError(err)
	s.Require().NotEmpty(first)

	second, err := s.service.Run(s.ctx, merchantID, "corr-2")
	s.Require().NoError(err)
	s.Empty(second, "second run must not attempt any fix")

	entries, err := s.log.ListByMerchant(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Len(entries, len(first), "second run must not append log entries")
}

func (s *ServiceSuite) TestRunSkipsSatisfiedFacts() {
	merchantID := s.seedBareMerchant()
	s.facts.PutTemplateSelection(models.TemplateSelection{
		MerchantID: merchantID,
		TemplateID: "custom-theme",
		SelectedAt: time.Now(),
	})
	s.facts.PutPolicy(models.Policy{
		MerchantID: merchantID,
		Type:       models.PolicyTypeRefund,
		Status:     models.PolicyStatusPublished,
		Body:       "merchant's own refund text",
	})

	results, err := s.service.Run(s.ctx, merchantID, "")
	s.Require().NoError(err)

	s.Require().Len(results, len(models.PolicyTypes)-1)
	for _, result := range results {
		s.NotEqual(remediation.FixSelectDefaultTemplate, result.FixCode)
		s.NotEqual(remediation.FixPublishPolicy(models.PolicyTypeRefund), result.FixCode)
	}

	// The merchant's own choices are untouched.
	sel, err := s.facts.FindTemplateSelection(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Equal("custom-theme", sel.TemplateID)
}

func (s *ServiceSuite) TestRunDraftPolicyGetsPublished() {
	merchantID := s.seedBareMerchant()
	s.facts.PutTemplateSelection(models.TemplateSelection{
		MerchantID: merchantID,
		TemplateID: "custom-theme",
	})
	s.facts.PutPolicy(models.Policy{
		MerchantID: merchantID,
		Type:       models.PolicyTypeRefund,
		Status:     models.PolicyStatusDraft,
		Body:       "unfinished draft",
	})

	results, err := s.service.Run(s.ctx, merchantID, "")
	s.Require().NoError(err)
	s.Len(results, len(models.PolicyTypes), "a draft policy still counts as unpublished")
}

func (s *ServiceSuite) TestRunUnknownMerchant() {
	_, err := s.service.Run(s.ctx, id.MerchantID(uuid.New()), "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// failingPolicyStore makes PublishPolicy fail for one policy type so the
// batch tolerance path can be exercised.
type failingPolicyStore struct {
	*merchantStore.Memory
	failType models.PolicyType
}

func (f *failingPolicyStore) PublishPolicy(ctx context.Context, merchantID id.MerchantID, policyType models.PolicyType, body string, now time.Time) error {
	if policyType == f.failType {
		return errors.New("storage unavailable")
	}
	return f.Memory.PublishPolicy(ctx, merchantID, policyType, body, now)
}

func (s *ServiceSuite) TestRunRecordsFailuresAndContinues() {
	merchantID := s.seedBareMerchant()
	facts := &failingPolicyStore{Memory: s.facts, failType: models.PolicyTypeShipping}
	service := remediation.NewService(facts, s.log)

	results, err := service.Run(s.ctx, merchantID, "corr-1")
	s.Require().NoError(err, "a failed fix must not abort the run")
	s.Require().Len(results, 1+len(models.PolicyTypes))

	var failed, applied int
	for _, result := range results {
		switch result.Outcome {
		case remediation.OutcomeFailed:
			failed++
			s.Equal(remediation.FixPublishPolicy(models.PolicyTypeShipping), result.FixCode)
			s.Contains(result.Detail, "storage unavailable")
		case remediation.OutcomeApplied:
			applied++
		}
	}
	s.Equal(1, failed)
	s.Equal(len(models.PolicyTypes), applied)

	// The failure is in the log alongside the successes.
	entries, err := s.log.ListByMerchant(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Len(entries, 1+len(models.PolicyTypes))

	// The failed fix is retried on the next run; the rest are not.
	retry, err := service.Run(s.ctx, merchantID, "corr-2")
	s.Require().NoError(err)
	s.Require().Len(retry, 1)
	s.Equal(remediation.FixPublishPolicy(models.PolicyTypeShipping), retry[0].FixCode)
	s.Equal(remediation.OutcomeFailed, retry[0].Outcome)
}

func (s *ServiceSuite) TestRunGeneratesCorrelationID() {
	merchantID := s.seedBareMerchant()

	_, err := s.service.Run(s.ctx, merchantID, "")
	s.Require().NoError(err)

	entries, err := s.log.ListByMerchant(s.ctx, merchantID)
	s.Require().NoError(err)
	s.Require().NotEmpty(entries)
	s.NotEmpty(entries[0].CorrelationID)
	for _, entry := range entries {
		s.Equal(entries[0].CorrelationID, entry.CorrelationID, "one run shares one correlation ID")
	}
}
