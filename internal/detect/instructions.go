package detect

import (
	"fmt"
	"strings"

	"github.com/seoagent/hostprobe/internal/catalog"
)

// IntegrationInstructions renders human-readable setup steps for a detected
// provider from its capability profile. Pure formatting, no I/O.
func IntegrationInstructions(cat *catalog.Catalog, provider, domain string) string {
	profile, ok := cat.Profile(provider)
	if !ok {
		return fmt.Sprintf("No integration is available for %s yet. Upload sitemap.xml and robots.txt for %s manually via your hosting control panel.", provider, domain)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Setting up %s for %s\n\n", profile.DisplayName, domain)

	if !profile.HasAutomatableDeploy() {
		fmt.Fprintf(&b, "%s does not expose an API for SEO file deployment.\n", profile.DisplayName)
		b.WriteString("1. Generate sitemap.xml and robots.txt in the dashboard.\n")
		b.WriteString("2. Upload both files through your provider's file manager or theme editor.\n")
		return b.String()
	}

	step := 1
	switch profile.Auth {
	case catalog.AuthAPIKey:
		fmt.Fprintf(&b, "%d. Create an API key in your %s account and paste it into the integration settings.\n", step, profile.DisplayName)
		step++
	case catalog.AuthOAuth:
		fmt.Fprintf(&b, "%d. Click \"Connect %s\" and complete the OAuth authorization.\n", step, profile.DisplayName)
		step++
	}
	for _, cap := range profile.Capabilities {
		if !cap.Automatable {
			continue
		}
		switch cap.Kind {
		case catalog.ActionSitemapDeploy:
			fmt.Fprintf(&b, "%d. Enable automatic sitemap.xml deployment.\n", step)
			step++
		case catalog.ActionRobotsDeploy:
			fmt.Fprintf(&b, "%d. Enable automatic robots.txt deployment.\n", step)
			step++
		}
	}
	if len(profile.DeploymentMethods) > 0 {
		fmt.Fprintf(&b, "\nDeployment uses: %s.\n", strings.Join(profile.DeploymentMethods, ", "))
	}
	return b.String()
}
