package gphoto2

/*
#include <stdlib.h>
#include <gphoto2/gphoto2.h>

#include "bridge.h"
*/
import "C"
import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dialup-inc/gphoto2/internal/relay"
)

// LogLevel is the verbosity of a libgphoto2 log line. A log function
// registered at a level receives that level and everything below it.
type LogLevel int

const (
	LogError   LogLevel = C.GP_LOG_ERROR
	LogVerbose LogLevel = C.GP_LOG_VERBOSE
	LogDebug   LogLevel = C.GP_LOG_DEBUG
	LogData    LogLevel = C.GP_LOG_DATA
)

func (l LogLevel) String() string {
	switch l {
	case LogError:
		return "error"
	case LogVerbose:
		return "verbose"
	case LogDebug:
		return "debug"
	case LogData:
		return "data"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// ZerologLevel maps l onto the closest zerolog level.
func (l LogLevel) ZerologLevel() zerolog.Level {
	switch l {
	case LogError:
		return zerolog.ErrorLevel
	case LogVerbose:
		return zerolog.InfoLevel
	case LogDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// LogEntry is one line from the native logger.
type LogEntry struct {
	Level   LogLevel
	Domain  string
	Message string
}

const (
	logQueueSize = 256
	logPushWait  = 10 * time.Millisecond
)

// LogSubscription is a log function registered with libgphoto2.
//
// libgphoto2 may log from threads it controls. Lines are queued there and
// delivered in order on a single goroutine; if the queue stays full for a
// moment the line is dropped and counted.
type LogSubscription struct {
	id     C.int
	handle handleID
	relay  *relay.Relay[LogEntry]

	closeOnce sync.Once
}

// AddLogFunc registers fn for native log lines up to level.
func AddLogFunc(level LogLevel, fn func(LogEntry)) (*LogSubscription, error) {
	sub := &LogSubscription{
		relay: relay.New(logQueueSize, logPushWait, fn),
	}
	sub.handle = register(sub)

	id, err := checkResult(int(C.gp2go_log_add_func(C.int(level), C.uintptr_t(sub.handle))))
	if err != nil {
		unregister(sub.handle)
		sub.relay.Close()
		return nil, err
	}
	sub.id = C.int(id)

	return sub, nil
}

// LogToZerolog forwards native log lines up to level to logger, with the
// domain as a field.
func LogToZerolog(level LogLevel, logger zerolog.Logger) (*LogSubscription, error) {
	return AddLogFunc(level, func(e LogEntry) {
		logger.WithLevel(e.Level.ZerologLevel()).
			Str("domain", e.Domain).
			Msg(e.Message)
	})
}

func (s *LogSubscription) push(level LogLevel, domain, msg string) {
	s.relay.Push(LogEntry{Level: level, Domain: domain, Message: msg})
}

// Dropped returns the number of lines lost to a full queue.
func (s *LogSubscription) Dropped() uint64 {
	return s.relay.Dropped()
}

// Close unregisters the log function and waits for queued lines to be
// delivered.
func (s *LogSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = call(C.gp_log_remove_func(s.id))
		unregister(s.handle)
		s.relay.Close()
	})
	return err
}

// Log writes a line through libgphoto2's logger, reaching every registered
// log function at or above level.
func Log(level LogLevel, domain, msg string) {
	cdomain, cmsg := cString(domain), cString(msg)
	defer freeString(cdomain)
	defer freeString(cmsg)

	C.gp2go_log(C.int(level), cdomain, cmsg)
}
