package catalog

// Default returns the built-in provider catalog. Signatures are reference
// data observed from each provider's edge behavior; declaration order sets
// the tie-break rank.
func Default() *Catalog {
	fps := []Fingerprint{
		{
			Provider: "cloudflare",
			Headers: map[string]MatchRule{
				"cf-ray": Regex(`(?i)^[0-9a-f]+-[a-z]+$`),
				"server": Substring("cloudflare"),
			},
			DNS:   []string{"cloudflare.net", "cdn.cloudflare.net", "pages.dev", "workers.dev"},
			Paths: []string{"/cdn-cgi/trace"},
		},
		{
			Provider: "vercel",
			Headers: map[string]MatchRule{
				"x-vercel-id":    Regex(`.+`),
				"x-vercel-cache": Regex(`.+`),
			},
			DNS: []string{"vercel.app", "vercel-dns.com"},
		},
		{
			Provider: "netlify",
			Headers: map[string]MatchRule{
				"x-nf-request-id": Regex(`.+`),
				"server":          Substring("netlify"),
			},
			DNS: []string{"netlify.app", "netlify.com"},
		},
		{
			Provider: "aws-cloudfront",
			Headers: map[string]MatchRule{
				"x-amz-cf-id":  Regex(`.+`),
				"x-amz-cf-pop": Regex(`.+`),
				"via":          Substring("cloudfront"),
			},
			DNS: []string{"cloudfront.net", "awsglobalaccelerator.com"},
		},
		{
			Provider: "fastly",
			Headers: map[string]MatchRule{
				"x-served-by": Substring("cache-"),
				"via":         Substring("varnish"),
			},
			DNS: []string{"fastly.net"},
		},
		{
			Provider: "akamai",
			Headers: map[string]MatchRule{
				"x-akamai-transformed": Regex(`.+`),
				"server":               Substring("AkamaiGHost"),
			},
			DNS: []string{"akamaiedge.net", "akamaized.net", "edgekey.net", "edgesuite.net"},
		},
		{
			Provider: "azure-front-door",
			Headers: map[string]MatchRule{
				"x-azure-ref": Regex(`.+`),
			},
			DNS: []string{"azurefd.net", "azureedge.net", "trafficmanager.net"},
		},
		{
			Provider: "github-pages",
			Headers: map[string]MatchRule{
				"server":              Exact("GitHub.com"),
				"x-github-request-id": Regex(`.+`),
			},
			DNS: []string{"github.io"},
		},
		{
			Provider: "wpengine",
			Headers: map[string]MatchRule{
				"x-powered-by": Substring("WP Engine"),
			},
			DNS:   []string{"wpengine.com"},
			Paths: []string{"/wp-login.php", "/wp-json/"},
		},
		{
			Provider: "shopify",
			Headers: map[string]MatchRule{
				"x-shopid":             Regex(`^\d+$`),
				"x-sorting-hat-shopid": Regex(`^\d+$`),
			},
			DNS:   []string{"myshopify.com", "shopify.com"},
			Paths: []string{"/cart.js"},
		},
		{
			Provider: "squarespace",
			Headers: map[string]MatchRule{
				"server": Substring("Squarespace"),
			},
			DNS: []string{"squarespace.com"},
		},
		{
			Provider: "wix",
			Headers: map[string]MatchRule{
				"server":           Substring("Pepyaka"),
				"x-wix-request-id": Regex(`.+`),
			},
			DNS: []string{"wixdns.net", "wix.com"},
		},
		{
			Provider: "ghost",
			Headers: map[string]MatchRule{
				"x-ghost-cache-status": Regex(`.+`),
			},
			DNS:   []string{"ghost.io"},
			Paths: []string{"/ghost/"},
		},
		{
			Provider: "heroku",
			Headers: map[string]MatchRule{
				"via":    Substring("vegur"),
				"server": Substring("Cowboy"),
			},
			DNS: []string{"herokuapp.com", "herokudns.com"},
		},
		{
			Provider: "render",
			Headers: map[string]MatchRule{
				"x-render-origin-server": Regex(`.+`),
			},
			DNS: []string{"onrender.com", "render.com"},
		},
		{
			Provider: "flyio",
			Headers: map[string]MatchRule{
				"fly-request-id": Regex(`.+`),
				"server":         Substring("Fly/"),
			},
			DNS: []string{"fly.dev"},
		},
		// Detected but not yet profiled; surfaces in results without
		// recommendations until a capability profile is added.
		{
			Provider: "pantheon",
			Headers: map[string]MatchRule{
				"x-pantheon-styx-hostname": Regex(`.+`),
			},
			DNS: []string{"pantheonsite.io"},
		},
	}

	profiles := map[string]Profile{
		"cloudflare": {
			DisplayName: "Cloudflare",
			Category:    CategoryCDN,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionRobotsDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionEdgeFunction, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"Workers", "Page Rules", "KV storage"},
		},
		"vercel": {
			DisplayName: "Vercel",
			Category:    CategoryPlatform,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionRobotsDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionServerlessFunction, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"Deploy API", "Edge Functions", "vercel.json rewrites"},
		},
		"netlify": {
			DisplayName: "Netlify",
			Category:    CategoryPlatform,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionRobotsDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionServerlessFunction, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthOAuth,
			DeploymentMethods: []string{"Netlify API", "Functions", "_redirects file"},
		},
		"aws-cloudfront": {
			DisplayName: "AWS CloudFront",
			Category:    CategoryCDN,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true},
				{Kind: ActionEdgeFunction, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"Lambda@Edge", "S3 origin upload"},
		},
		"fastly": {
			DisplayName: "Fastly",
			Category:    CategoryCDN,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true},
				{Kind: ActionEdgeFunction, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"Compute@Edge", "VCL snippets"},
		},
		"akamai": {
			DisplayName: "Akamai",
			Category:    CategoryCDN,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true},
				{Kind: ActionEdgeFunction, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"EdgeWorkers", "Property Manager"},
		},
		"azure-front-door": {
			DisplayName: "Azure Front Door",
			Category:    CategoryCDN,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true},
			},
			Auth:              AuthOAuth,
			DeploymentMethods: []string{"Rules Engine", "origin storage upload"},
		},
		"github-pages": {
			DisplayName: "GitHub Pages",
			Category:    CategoryHosting,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionRobotsDeploy, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthOAuth,
			DeploymentMethods: []string{"repository commit via API"},
		},
		"wpengine": {
			DisplayName: "WP Engine",
			Category:    CategoryCMS,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: true, RequiresAuth: true},
				{Kind: ActionRobotsDeploy, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"WordPress REST API", "SEO plugin endpoints"},
		},
		"shopify": {
			DisplayName: "Shopify",
			Category:    CategoryCMS,
			Capabilities: []Capability{
				// Shopify generates sitemap.xml and robots.txt itself;
				// direct file deployment is not exposed.
				{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true},
				{Kind: ActionRobotsDeploy, Automatable: false, RequiresAuth: true},
			},
			Auth:              AuthOAuth,
			DeploymentMethods: []string{"theme liquid templates"},
		},
		"squarespace": {
			DisplayName:       "Squarespace",
			Category:          CategoryCMS,
			Capabilities:      []Capability{{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: false}},
			Auth:              AuthNone,
			DeploymentMethods: []string{"built-in sitemap only"},
		},
		"wix": {
			DisplayName:       "Wix",
			Category:          CategoryCMS,
			Capabilities:      []Capability{{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: false}},
			Auth:              AuthNone,
			DeploymentMethods: []string{"built-in sitemap only"},
		},
		"ghost": {
			DisplayName: "Ghost",
			Category:    CategoryCMS,
			Capabilities: []Capability{
				{Kind: ActionRobotsDeploy, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"Admin API", "routes.yaml upload"},
		},
		"heroku": {
			DisplayName:       "Heroku",
			Category:          CategoryPlatform,
			Capabilities:      []Capability{{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true}},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"app release via Platform API"},
		},
		"render": {
			DisplayName: "Render",
			Category:    CategoryPlatform,
			Capabilities: []Capability{
				{Kind: ActionSitemapDeploy, Automatable: true, RequiresAuth: true},
			},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"static site publish via API"},
		},
		"flyio": {
			DisplayName:       "Fly.io",
			Category:          CategoryPlatform,
			Capabilities:      []Capability{{Kind: ActionSitemapDeploy, Automatable: false, RequiresAuth: true}},
			Auth:              AuthAPIKey,
			DeploymentMethods: []string{"app release via flyctl/API"},
		},
	}

	c, err := New(fps, profiles)
	if err != nil {
		// Built-in data; a failure here is a programming error.
		panic(err)
	}
	return c
}
