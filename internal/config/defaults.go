package config

// Default configuration values.
const (
	DefaultScriptName       = "server.py"
	DefaultRequirementsName = "requirements.txt"
	DefaultLauncherName     = "fastmcp"
	DefaultLauncherPackage  = "fastmcp>=0.1.0"
	DefaultServerName       = "InstagramDM"
	DefaultCredentialsFile  = "instagram_cookies.json"

	// Environment variables handed to the payload process.
	EnvSessionID = "INSTAGRAM_SESSION_ID"
	EnvCSRFToken = "INSTAGRAM_CSRF_TOKEN"
	EnvDSUserID  = "INSTAGRAM_DS_USER_ID"

	// Environment overrides for settings.
	EnvSettingsPath  = "IGDM_SETTINGS"
	EnvLogLevel      = "IGDM_LOG_LEVEL"
	EnvScript        = "IGDM_SCRIPT"
	EnvAssistantPath = "IGDM_ASSISTANT_CONFIG"
)
