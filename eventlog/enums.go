package eventlog

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
	LogLevelDebug   LogLevel = "debug"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelDebug:
		return true
	default:
		return false
	}
}

// Normalize maps unknown levels to the default. A misbehaving caller gets a
// normalized entry instead of an error: logging must never be the cause of
// an application failure.
func (l LogLevel) Normalize() LogLevel {
	if l.IsValid() {
		return l
	}

	return LogLevelInfo
}

type LogCategory string

const (
	LogCategorySystem   LogCategory = "system"
	LogCategoryProvider LogCategory = "provider"
	LogCategoryUser     LogCategory = "user"
	LogCategoryError    LogCategory = "error"
	LogCategoryAPI      LogCategory = "api"
	LogCategoryAuth     LogCategory = "auth"
	LogCategoryDatabase LogCategory = "database"
	LogCategoryNetwork  LogCategory = "network"
)

func (c LogCategory) IsValid() bool {
	switch c {
	case LogCategorySystem, LogCategoryProvider, LogCategoryUser, LogCategoryError,
		LogCategoryAPI, LogCategoryAuth, LogCategoryDatabase, LogCategoryNetwork:
		return true
	default:
		return false
	}
}

func (c LogCategory) Normalize() LogCategory {
	if c.IsValid() {
		return c
	}

	return LogCategorySystem
}

// AuthAction enumerates the auth flow steps LogAuth records.
type AuthAction string

const (
	AuthActionLogin         AuthAction = "login"
	AuthActionLogout        AuthAction = "logout"
	AuthActionTokenRefresh  AuthAction = "token_refresh"
	AuthActionKeyValidation AuthAction = "key_validation"
)

// NetworkState enumerates the connectivity transitions LogNetworkStatus records.
type NetworkState string

const (
	NetworkStateOnline       NetworkState = "online"
	NetworkStateOffline      NetworkState = "offline"
	NetworkStateReconnecting NetworkState = "reconnecting"
	NetworkStateConnected    NetworkState = "connected"
)
