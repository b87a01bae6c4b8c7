// Package obslog is the leveled, component-tagged debug logger used by
// the CLI. Core generation packages (graphgen, assign, spatial, hallway,
// ...) and the render/export packages never log; every entry point here
// is reached only from cmd/dungeongen.
package obslog

import "github.com/sirupsen/logrus"

// Logger wraps a component-tagged logrus.Entry so every line carries the
// subsystem it came from.
type Logger struct {
	entry *logrus.Entry
}

// New returns a Logger tagged with the given component name, e.g.
// "svgrender" or "cli".
func New(component string) *Logger {
	return &Logger{entry: logrus.WithField("component", component)}
}

// SetLevel sets the package-wide logrus level, e.g. from a CLI -verbose
// flag.
func SetLevel(level logrus.Level) {
	logrus.SetLevel(level)
}

// WithFields returns a derived Logger carrying additional structured
// fields, for call sites that want to tag a single log line with extra
// context (room id, floor index, output path) without polluting every
// other line from the same component.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
