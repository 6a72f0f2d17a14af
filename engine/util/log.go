package util

import "github.com/pkg/errors"

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogSystem | LogIO | LogGameStateGlobal | LogTextures | LogOpenGL

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogSystem LogCategory = 1 << iota
	LogOpenGL
	LogIO
	LogUnitState
	LogGameStateGlobal
	LogTextures
	LogSpawn
	LogCombat

	LogAll = LogSystem | LogOpenGL | LogIO | LogUnitState | LogGameStateGlobal | LogTextures | LogSpawn | LogCombat
)

// SetLogLevel replaces the global level and category masks.
func SetLogLevel(level LogLevel, categories LogCategory) {
	GLOBAL_LOG_LEVEL = level
	GLOBAL_LOG_CATEGORIES = categories
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	println(txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogIOInfo(txt string) {
	log(LogIO, LogLevelInfo, txt)
}

func LogGameInfo(txt string) {
	log(LogGameStateGlobal, LogLevelInfo, txt)
}

func LogGameDebug(txt string) {
	log(LogGameStateGlobal, LogLevelDebug, txt)
}

func LogGameError(txt string) {
	log(LogGameStateGlobal, LogLevelError, txt)
}

func LogUnitDebug(txt string) {
	log(LogUnitState, LogLevelDebug, txt)
}

func LogUnitWarning(txt string) {
	log(LogUnitState, LogLevelWarning, txt)
}

func LogSpawnInfo(txt string) {
	log(LogSpawn, LogLevelInfo, txt)
}

func LogSpawnWarning(txt string) {
	log(LogSpawn, LogLevelWarning, txt)
}

func LogCombatDebug(txt string) {
	log(LogCombat, LogLevelDebug, txt)
}

func LogTextureDebug(txt string) {
	log(LogTextures, LogLevelDebug, txt)
}

func LogTextureWarning(txt string) {
	log(LogTextures, LogLevelWarning, txt)
}

func LogTextureError(txt string) {
	log(LogTextures, LogLevelError, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

// ParseLogLevel maps "error", "warning", "info" and "debug" to a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	switch name {
	case "error":
		return LogLevelError, nil
	case "warning", "warn":
		return LogLevelWarning, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	}
	return 0, errors.Errorf("unknown log level %q", name)
}
