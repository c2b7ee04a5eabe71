package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Folio/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName          = "Go Folio"
	AppID            = "com.github.tartampluch.go-folio"
	KeyringService   = "com.github.tartampluch.go-folio"
	KeyringRelayUser = "mail-relay"
	LogFileName      = "app.log"
	MCPServerName    = "go-folio"
	CLIName          = "folio"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagNoServer     = "no-server"
	FlagCategory     = "category"
	FlagNow          = "now"
	FlagICS          = "ics"
	FlagName         = "name"
	FlagRadians      = "rad"
	FlagEnvFile      = "env-file"
	FlagLang         = "lang"
	FlagSummary      = "summary"
	FlagReminder     = "reminder"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescNoServer = "Do not start the local HTTP API next to the window"
	FlagDescCategory = "Unit category (length, weight, temperature, volume, area, speed)"
	FlagDescNow      = "Evaluation date (YYYY-MM-DD), defaults to today"
	FlagDescICS      = "Write an iCalendar file to this path"
	FlagDescName     = "Name used in calendar event summaries"
	FlagDescRadians  = "Evaluate trigonometric functions in radians"
	FlagDescEnvFile  = "Load environment variables from this file"
	FlagDescLang     = "Output language (en, fr), defaults to FOLIO_LANGUAGE"
	FlagDescSummary  = "Summary of the exported calendar event"
	FlagDescReminder = "Alarm trigger of exported events as an ISO 8601 duration, empty for none"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// MCP Tools
// -----------------------------------------------------------------------------

const (
	ToolConvert    = "convert_units"
	ToolAge        = "compute_age"
	ToolDifference = "date_difference"
	ToolEvaluate   = "evaluate_expression"
	ToolKeys       = "calculator_keys"

	ArgCategory   = "category"
	ArgFrom       = "from"
	ArgTo         = "to"
	ArgValue      = "value"
	ArgBirth      = "birth_date"
	ArgNow        = "now"
	ArgStart      = "start_date"
	ArgEnd        = "end_date"
	ArgExpression = "expression"
	ArgAngleMode  = "angle_mode"
	ArgKeys       = "keys"
	ArgLanguage   = "language"
)

// -----------------------------------------------------------------------------
// Preference Keys
// -----------------------------------------------------------------------------

const (
	PrefLanguage          = "language"
	PrefAngleMode         = "calculator_angle_mode"
	PrefConverterCategory = "converter_category"
	PrefSectionPrefix     = "section_visible."
	PrefScientific        = "calculator_scientific"
	PrefLastRun           = "last_run_version"
)

// Section names, used as preference key suffixes and visibility targets.
const (
	SectionConverter  = "converter"
	SectionAge        = "age"
	SectionDifference = "difference"
	SectionCalculator = "calculator"
	SectionWeather    = "weather"
)

// Sections lists every section in tab order.
var Sections = []string{SectionConverter, SectionAge, SectionDifference, SectionCalculator, SectionWeather}

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 720
	MainWindowHeight    = 560
	LayoutColumnsDouble = 2
	LayoutColumnsKeypad = 4
	LayoutColumnsSci    = 5
	HeadingTextSize     = 22
	HeadingRevealFrom   = 0.6
	HeadingRevealTime   = 350 * time.Millisecond
	VisibilityThreshold = 0.5
	ResultDecimals      = 6
	EvaluateDecimals    = 10

	DateFormatDisplay = "2006-01-02"
	DateFormatLong    = "Monday, January 2, 2006"
	DescribeSeparator = ", "
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle        = "win_title"
	TKeyTabConverter    = "tab_converter"
	TKeyTabAge          = "tab_age"
	TKeyTabDifference   = "tab_difference"
	TKeyTabCalculator   = "tab_calculator"
	TKeyTabWeather      = "tab_weather"
	TKeyLblCategory     = "lbl_category"
	TKeyLblFrom         = "lbl_from"
	TKeyLblTo           = "lbl_to"
	TKeyBtnSwap         = "btn_swap"
	TKeyBtnClear        = "btn_clear"
	TKeyBtnToday        = "btn_today"
	TKeyBtnLookup       = "btn_lookup"
	TKeyBtnEvaluate     = "btn_evaluate"
	TKeyLblBirthDate    = "lbl_birth_date"
	TKeyLblStartDate    = "lbl_start_date"
	TKeyLblEndDate      = "lbl_end_date"
	TKeyLblCity         = "lbl_city"
	TKeyLblExpression   = "lbl_expression"
	TKeyLblScientific   = "lbl_scientific"
	TKeyLblBreakdown    = "lbl_breakdown"
	TKeyHintBirthDate   = "hint_birth_date"
	TKeyHintDates       = "hint_dates"
	TKeyAgeSummary      = "age_summary"      // Requires Years, Months, Days
	TKeyAgeTotals       = "age_totals"       // Requires Days, Hours, Minutes
	TKeyAgeFacts        = "age_facts"        // Requires Weekday, Zodiac
	TKeyAgeNext         = "age_next"         // Requires Count, Age
	TKeyDiffTotals      = "diff_totals"      // Requires Days, Weeks, Remainder
	TKeyDiffWorking     = "diff_working"     // Requires Working, Weekends
	TKeyDiffYears       = "diff_years"       // Plural, requires Count
	TKeyDiffMonths      = "diff_months"      // Plural, requires Count
	TKeyDiffDays        = "diff_days"        // Plural, requires Count
	TKeyWeatherCurrent  = "weather_current"  // Requires Place, Celsius, Fahrenheit, Conditions
	TKeyWeatherForecast = "weather_forecast" // Requires Date, Min, Max
	TKeyErrCityNotFound = "err_city_not_found"
	TKeyErrWeather      = "err_weather_unavailable"
	TKeyErrExpression   = "err_expression"
	TKeyWeatherWind     = "weather_wind" // Requires Kph, Mph
	TKeyLblSections     = "lbl_sections"
	TKeyLblLanguage     = "lbl_language"
	TKeyLblMemory       = "lbl_memory" // Requires Value
	TKeyMenuSettings    = "menu_settings"
	TKeyWinSettings     = "win_settings"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyLblFooter       = "lbl_footer" // Requires Version
	TKeyHintNoSections  = "hint_no_sections"
	TKeyHintCity        = "hint_city"
	TKeyHintExpression  = "hint_expression"

	TKeyPrefixWeekday = "weekday_"
	TKeyPrefixZodiac  = "zodiac_"
	TKeyPrefixUnit    = "unit_"
	TKeyPrefixCat     = "category_"
	TKeyPrefixWMO     = "wmo_"
	TKeyPrefixMonth   = "month_"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage      = "en"
	DefaultPort          = "18090"
	DefaultBindAddr      = "127.0.0.1"
	DefaultReminderValue = "-P1D"
	DefaultLeapYear      = 2000 // Leap year used when only a month and day are known
	DefaultForecastDays  = 3

	// MaxFactorial is the largest n whose n! is finite in float64.
	MaxFactorial = 170

	// UIDNamespace seeds the name-based UUIDs of calendar events.
	UIDNamespace = "https://github.com/tartampluch/go-folio/calendar"
	FormatUIDKey = "%s|%s|%d"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion    = "2.0"
	ICalProdid     = "-//Go Folio//Calculators//EN"
	ICalCalName    = "Go Folio"
	ICalMethod     = "PUBLISH"
	ICalScale      = "GREGORIAN"
	ICalComponent  = "VALARM"
	ICalAction     = "DISPLAY"
	ICalRangeName  = "Date range"
	FormatAgeEvent = "Birthday: %s (%d)"
	FormatBirth    = "Birthday: %s (birth)"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events apply.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05"

	MinPort = 1
	MaxPort = 65535

	MaxRequestBodySize  = 64 * 1024
	MaxHTTPResponseSize = 4 * 1024 * 1024
	MaxExpressionLength = 512
	MaxCalculatorKeys   = 256
	ValidationSeparator = "; "
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 15 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	CORSMaxAge         = 300
	SchemeHTTP         = "http"
	SchemeHTTPS        = "https"
	AddrSeparator      = ":"

	BreakerMaxRequests = 3
	BreakerInterval    = 30 * time.Second
	BreakerTimeout     = 60 * time.Second
	BreakerMinRequests = 5
	BreakerFailRatio   = 0.6

	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultRelayURL     = "https://api.emailjs.com/api/v1.0/email/send"
)

// -----------------------------------------------------------------------------
// HTTP Routes, Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	RouteHealth        = "/health"
	RouteMetrics       = "/metrics"
	RouteAPI           = "/api"
	RouteUnits         = "/units"
	RouteConvert       = "/convert"
	RouteAge           = "/age"
	RouteAgeICS        = "/age/calendar.ics"
	RouteDifference    = "/difference"
	RouteDifferenceICS = "/difference/calendar.ics"
	RouteCalculator    = "/calculator"
	RouteEvaluate      = "/evaluate"
	RouteWeather       = "/weather"
	RouteContact       = "/contact"
	RouteVCard         = "/contact.vcf"

	QueryCategory = "category"
	QueryFrom     = "from"
	QueryTo       = "to"
	QueryValue    = "value"
	QueryBirth    = "birth"
	QueryNow      = "now"
	QueryStart    = "start"
	QueryEnd      = "end"
	QueryCity     = "city"
	QueryName     = "name"
	QuerySummary  = "summary"
	QueryReminder = "reminder"
	QueryLang     = "lang"

	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAcceptLanguage  = "Accept-Language"
	HeaderAccept          = "Accept"

	MimeJSON            = "application/json; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeVCard           = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Environment Variables
// -----------------------------------------------------------------------------

const (
	EnvPort            = "FOLIO_PORT"
	EnvBindAddr        = "FOLIO_BIND_ADDR"
	EnvAllowedOrigins  = "FOLIO_ALLOWED_ORIGINS"
	EnvLanguage        = "FOLIO_LANGUAGE"
	EnvGeocodingURL    = "FOLIO_GEOCODING_URL"
	EnvForecastURL     = "FOLIO_FORECAST_URL"
	EnvRelayURL        = "FOLIO_RELAY_URL"
	EnvRelayService    = "FOLIO_RELAY_SERVICE_ID"
	EnvRelayTemplate   = "FOLIO_RELAY_TEMPLATE_ID"
	EnvRelayPublicKey  = "FOLIO_RELAY_PUBLIC_KEY"
	EnvRelayToken      = "FOLIO_RELAY_ACCESS_TOKEN"
	EnvOwnerName       = "FOLIO_OWNER_NAME"
	EnvOwnerGivenName  = "FOLIO_OWNER_GIVEN_NAME"
	EnvOwnerFamilyName = "FOLIO_OWNER_FAMILY_NAME"
	EnvOwnerEmail      = "FOLIO_OWNER_EMAIL"
	EnvOwnerTitle      = "FOLIO_OWNER_TITLE"
	EnvOwnerURL        = "FOLIO_OWNER_URL"
	EnvOwnerPhone      = "FOLIO_OWNER_PHONE"
	DefaultEnvFile     = ".env"
	ListSeparator      = ","
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrUpstreamStatus  = "upstream returned unexpected status"
	ErrUpstreamDecode  = "failed to decode upstream response"
	ErrUpstreamRequest = "network error during upstream request"
	ErrCityRequired    = "city name is required"
	ErrCityNotFound    = "no place matches that city name"
	ErrWeatherDown     = "weather service is unavailable, please try again later"
	ErrRelayNotConfig  = "mail relay is not configured"
	ErrRelayFailed     = "message could not be delivered, please try again later"
	ErrRelayToken      = "mail relay access token unavailable"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrDateParse       = "unable to parse date"
	ErrEnvLoad         = "failed to load environment file"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrInvalidRequest  = "invalid request"
	ErrUnknownCategory = "unknown unit category"
	ErrUnknownUnit     = "unit does not belong to category"
	ErrUnknownKey      = "unknown calculator key"
	ErrTooManyKeys     = "too many calculator keys"
	ErrExprEmpty       = "expression is empty"
	ErrExprTooLong     = "expression is too long"
	ErrExprSyntax      = "syntax error in expression"
	ErrExprFunction    = "unknown function"
	ErrExprNotFinite   = "expression result is not a finite number"
	ErrKeyringStore    = "failed to store secret in keyring"
	ErrMCPServe        = "MCP server failed"
	ErrOwnerMissing    = "portfolio owner profile is not configured"
	ErrValidation      = "validation failed"
	ErrReminderFormat  = "reminder must be an ISO 8601 duration such as -P1D"
	ErrNoWeather       = "weather lookups are disabled"
	ErrValueNotNumber  = "value is not a finite number"
	ErrBirthNotReady   = "birth date is missing, malformed or in the future"
	ErrRangeNotReady   = "start and end must both be valid dates"
	ErrToolResult      = "failed to encode tool result"
	ErrNoCategory      = "no unit category contains both units"
	ErrTokenEmpty      = "relay access token is empty"
	ErrWriteFile       = "failed to write file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgRequest        = "HTTP request"
	MsgDocCached      = "Document cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPrefMalformed  = "Ignoring malformed preference value"
	MsgBreakerState   = "Circuit breaker state changed"
	MsgWeatherLookup  = "Weather lookup"
	MsgRelaySent      = "Contact message relayed"
	MsgRelayTokenEnv  = "Relay token not in keyring, using environment"
	MsgSectionVisible = "Section became visible"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgPortBusy       = "The local API could not start on port %s."
	MsgTokenStored    = "Relay access token stored in keyring"
	MsgMCPStarting    = "Starting MCP server on stdio"
	MsgUpstreamCall   = "Calling upstream service"
	MsgUpstreamStatus = "Upstream returned error status"
	MsgBreakerReject  = "Circuit breaker rejected call"

	// ErrorDisplay is the sentinel shown by the calculator for non-finite results.
	ErrorDisplay = "Error"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyBytes     = "bytes"
	LogKeyRequestID = "request_id"
	LogKeyValue     = "value"
	LogKeyCity      = "city"
	LogKeyBreaker   = "breaker"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyTarget    = "target"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompServer  = "server"
	CompWeather = "weather"
	CompContact = "contact"
	CompMain    = "main"
	CompCLI     = "cli"
	CompMCP     = "mcp"
	CompI18n    = "i18n"
	CompPrefs   = "prefs"
	CompFetcher = "fetcher"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricsNamespace = "folio"
	LabelEndpoint    = "endpoint"
	LabelMethod      = "method"
	LabelStatus      = "status"
	LabelErrorType   = "error_type"
	LabelUpstream    = "upstream"
	LabelOutcome     = "outcome"
	LabelCalculator  = "calculator"
	UpstreamWeather  = "weather"
	UpstreamRelay    = "relay"
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeNotReady  = "not_ready"
	OutcomeRejected  = "rejected"

	CalcConverter  = "converter"
	CalcAge        = "age"
	CalcDifference = "difference"
	CalcKeypad     = "keypad"
	CalcExpression = "expression"

	ErrTypeBadRequest  = "bad_request"
	ErrTypeValidation  = "validation"
	ErrTypeNotFound    = "not_found"
	ErrTypeUpstream    = "upstream"
	ErrTypeUnavailable = "unavailable"
	ErrTypeInternal    = "internal"
)
