package resources

import "github.com/havenapp/wellspring/internal/models"

// FallbackResources is the fixed list served when the external service is
// unavailable or returns an unusable response.
func FallbackResources() []models.Resource {
	return []models.Resource{
		{
			Name:        "988 Suicide & Crisis Lifeline",
			Description: "Free, confidential crisis support available 24/7.",
			ContactInfo: "Call or text 988",
			Type:        models.ResourceHotline,
		},
		{
			Name:        "Crisis Text Line",
			Description: "Text-based crisis counseling with trained volunteers.",
			ContactInfo: "Text HOME to 741741",
			Type:        models.ResourceHotline,
		},
		{
			Name:        "SAMHSA National Helpline",
			Description: "Treatment referral and information service for mental health and substance use.",
			ContactInfo: "1-800-662-4357",
			Type:        models.ResourceHotline,
		},
		{
			Name:        "NAMI",
			Description: "National Alliance on Mental Illness: education, support groups and a helpline.",
			ContactInfo: "https://www.nami.org",
			Type:        models.ResourceOrganization,
		},
		{
			Name:        "Calm Harm",
			Description: "App with short guided tasks for managing the urge to self-harm.",
			ContactInfo: "App Store / Google Play",
			Type:        models.ResourceApp,
		},
	}
}
