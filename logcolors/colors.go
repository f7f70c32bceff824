package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
)

// Server/Init log prefixes
const (
	LogServer = Green + "[Server]" + Reset
	LogConfig = Cyan + "[Config]" + Reset
	LogSentry = Purple + "[Sentry]" + Reset
)

// Request handling log prefixes
const (
	LogRequest   = Purple + "[Request]" + Reset
	LogWordcloud = Green + "[Wordcloud]" + Reset
	LogTokenizer = Cyan + "[Tokenizer]" + Reset
)

// Provider service log prefixes
const (
	LogSearch        = Blue + "[Search]" + Reset
	LogHTTP          = Cyan + "[HTTP]" + Reset
	LogMatch         = Green + "[Match]" + Reset
	LogNoMatch       = Yellow + "[No Match]" + Reset
	LogLyrics        = Blue + "[Lyrics]" + Reset
	LogFallback      = Cyan + "[Fallback]" + Reset
	LogProviderError = Red + "[Provider Error]" + Reset
)
