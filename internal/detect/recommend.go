package detect

import (
	"fmt"
	"strings"

	"github.com/seoagent/hostprobe/internal/catalog"
)

// recommendations derives guidance text from the primary candidate. Pure
// function; "no provider detected" gets its own advice rather than an error.
func recommendations(primary *Candidate) []string {
	if primary == nil {
		return []string{
			"No hosting provider could be identified. Deploy sitemap.xml and robots.txt manually through your hosting control panel or file manager.",
			"Consider migrating to a supported provider (Cloudflare, Vercel, Netlify) to enable automated SEO file deployment.",
		}
	}

	name := primary.Provider
	profile := primary.Profile
	if profile == nil {
		return []string{
			fmt.Sprintf("Detected %s, but no automation profile is available for it yet. Deploy SEO files manually.", name),
		}
	}

	var recs []string
	if profile.HasAutomatableDeploy() {
		recs = append(recs,
			fmt.Sprintf("Enable the %s integration to deploy sitemap.xml and robots.txt automatically.", profile.DisplayName))
		switch profile.Auth {
		case catalog.AuthAPIKey:
			recs = append(recs, fmt.Sprintf("Connect your %s API key to authorize deployments.", profile.DisplayName))
		case catalog.AuthOAuth:
			recs = append(recs, fmt.Sprintf("Authorize SEOAgent with your %s account (OAuth) to enable deployments.", profile.DisplayName))
		}
		if len(profile.DeploymentMethods) > 0 {
			recs = append(recs,
				fmt.Sprintf("Available deployment mechanisms: %s.", strings.Join(profile.DeploymentMethods, ", ")))
		}
	} else {
		recs = append(recs,
			fmt.Sprintf("%s does not support automated SEO file deployment. Deploy sitemap.xml and robots.txt manually.", profile.DisplayName),
			"Consider upgrading your hosting plan or migrating to a provider with deployment APIs.")
	}

	if profile.Category == catalog.CategoryCDN {
		recs = append(recs,
			fmt.Sprintf("%s is a CDN; confirm the origin server behind it also allows file deployment, since CDN detection alone does not guarantee origin control.", profile.DisplayName))
	}
	return recs
}
