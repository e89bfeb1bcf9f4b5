package readiness

// Evaluate applies the readiness rule set to a snapshot.
// Pure domain logic - no I/O, no side effects, deterministic: the same
// snapshot always yields the same result including issue ordering.
//
// Rules run in fixed declaration order:
//  1. Identity  (blocker)  - name, slug, and a contact channel
//  2. Plan      (blocker)  - active subscription
//  3. Template  (blocker)  - storefront template selected
//  4. Policies  (warning)  - at least one policy published
//  5. Delivery  (blocker)  - at least one delivery method
//  6. Payments  (warning)  - default payout account on file
//
// Order affects only the issue list; the aggregate level is order-independent.
func Evaluate(snapshot Snapshot) OpsReadiness {
	var issues []Issue
	summary := Summary{}

	if summary.Identity = identityComplete(snapshot); !summary.Identity {
		issues = append(issues, Issue{
			Code:        CodeIdentityIncomplete,
			Severity:    SeverityBlocker,
			Title:       "Store identity incomplete",
			Description: "Set a store name, slug, and at least one contact channel (email or phone).",
			ActionURL:   "/admin/settings/profile",
		})
	}

	if summary.Plan = snapshot.PlanActive; !summary.Plan {
		issues = append(issues, Issue{
			Code:        CodeNoActivePlan,
			Severity:    SeverityBlocker,
			Title:       "No active plan",
			Description: "An active subscription plan is required before the store can go live.",
			ActionURL:   "/admin/billing/plans",
		})
	}

	if summary.Template = snapshot.TemplateID != ""; !summary.Template {
		issues = append(issues, Issue{
			Code:        CodeNoTemplateSelected,
			Severity:    SeverityBlocker,
			Title:       "No template selected",
			Description: "Pick a storefront template. A default can be applied automatically.",
			ActionURL:   "/admin/control-center/templates",
			Fixable:     true,
		})
	}

	if summary.Policies = len(snapshot.PublishedPolicies) > 0; !summary.Policies {
		issues = append(issues, Issue{
			Code:        CodePoliciesUnpublished,
			Severity:    SeverityWarning,
			Title:       "No policies published",
			Description: "Publish at least one store policy, or platform defaults can be applied automatically.",
			ActionURL:   "/admin/settings/policies",
			Fixable:     true,
		})
	}

	if summary.Delivery = snapshot.DeliveryConfigured; !summary.Delivery {
		issues = append(issues, Issue{
			Code:        CodeNoDeliveryMethod,
			Severity:    SeverityBlocker,
			Title:       "No delivery method",
			Description: "Configure self-managed delivery or connect a delivery partner.",
			ActionURL:   "/admin/settings/delivery",
		})
	}

	if summary.Payments = snapshot.PayoutAccountSet; !summary.Payments {
		issues = append(issues, Issue{
			Code:        CodeNoPayoutAccount,
			Severity:    SeverityWarning,
			Title:       "No payout account",
			Description: "Add a default bank beneficiary so payouts can be settled.",
			ActionURL:   "/admin/settings/payouts",
		})
	}

	return OpsReadiness{
		Level:   aggregateLevel(issues),
		Issues:  issues,
		Summary: summary,
	}
}

// identityComplete requires a name, a slug, and at least one contact channel.
func identityComplete(snapshot Snapshot) bool {
	return snapshot.Name != "" && snapshot.Slug != "" && (snapshot.Email != "" || snapshot.Phone != "")
}

// aggregateLevel folds issue severities into the overall classification:
// any blocker -> blocked, else any warning -> warning, else ready.
func aggregateLevel(issues []Issue) Level {
	level := LevelReady
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityBlocker:
			return LevelBlocked
		case SeverityWarning:
			level = LevelWarning
		}
	}
	return level
}
