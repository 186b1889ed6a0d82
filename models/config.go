package models

type Config struct {
	Debug bool `yaml:"debug" envconfig:"BEACON_DEBUG"`

	Api struct {
		Url  string `yaml:"url" envconfig:"BEACON_API_URL"`
		Port string `yaml:"port" envconfig:"BEACON_API_INTERNAL_PORT"`
	} `yaml:"api"`

	Beacon struct {
		Id          string `yaml:"id" envconfig:"BEACON_ID"`
		Name        string `yaml:"name" envconfig:"BEACON_NAME"`
		ApiVersion  string `yaml:"apiVersion" envconfig:"BEACON_API_VERSION"`
		Description string `yaml:"description" envconfig:"BEACON_DESCRIPTION"`
		WelcomeUrl  string `yaml:"welcomeUrl" envconfig:"BEACON_WELCOME_URL"`

		OrgId         string `yaml:"orgId" envconfig:"BEACON_ORG_ID"`
		OrgName       string `yaml:"orgName" envconfig:"BEACON_ORG_NAME"`
		OrgWelcomeUrl string `yaml:"orgWelcomeUrl" envconfig:"BEACON_ORG_WELCOME_URL"`
		OrgContactUrl string `yaml:"orgContactUrl" envconfig:"BEACON_ORG_CONTACT_URL"`

		// path to the yaml file holding per-field access-level overrides
		AccessLevelsPath string `yaml:"accessLevelsPath" envconfig:"BEACON_ACCESS_LEVELS_PATH"`
	} `yaml:"beacon"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"BEACON_ES_URL"`
		Username string `yaml:"username" envconfig:"BEACON_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"BEACON_ES_PASSWORD"`
	} `yaml:"elasticsearch"`

	AuthX struct {
		IsAuthorizationEnabled bool `yaml:"enabled" envconfig:"BEACON_AUTHZ_ENABLED"`

		// HTTP headers trusted from the upstream authenticating proxy
		RegisteredTierHeader string `yaml:"registeredTierHeader" envconfig:"BEACON_AUTHZ_REGISTERED_HEADER" default:"X-Beacon-Registered-Access"`
		DatasetGrantsHeader  string `yaml:"datasetGrantsHeader" envconfig:"BEACON_AUTHZ_GRANTS_HEADER" default:"X-Beacon-Dataset-Grants"`
	} `yaml:"authx"`

	Overview struct {
		RefreshEveryMinutes int `yaml:"refreshEveryMinutes" envconfig:"BEACON_OVERVIEW_REFRESH_MINUTES" default:"60"`
	} `yaml:"overview"`

	Query struct {
		SubQueryTimeoutSeconds int `yaml:"subQueryTimeoutSeconds" envconfig:"BEACON_SUBQUERY_TIMEOUT_SECONDS" default:"30"`
	} `yaml:"query"`
}
