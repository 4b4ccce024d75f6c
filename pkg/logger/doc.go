// Package logger provides structured logging for filmr.
//
// It wraps zerolog behind a small interface so that components can take a
// Logger as a dependency and tests can swap in NewTestLogger or NewNopLogger.
//
//	logger.Initialize(&cfg.Logging)
//
//	log := logger.GetLogger().WithField("session_id", session.ID)
//	log.InfoWithFields("Listing page processed", map[string]interface{}{
//	    "page":  2,
//	    "cards": 30,
//	})
//
// Console output goes to stderr through zerolog's ConsoleWriter. When
// logging.file is set, entries are also appended to that file.
package logger
