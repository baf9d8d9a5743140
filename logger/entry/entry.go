// Package entry builds a single structured log record: a level, a
// message, optional fields and errors, logged through logrus on Log.
package entry

import (
	"github.com/sirupsen/logrus"

	loglvl "github.com/nabbar/cybercache/logger/level"
)

// Entry accumulates fields and errors for one log record before it is
// written. Each setter returns the same Entry so calls can be chained.
type Entry interface {
	FieldAdd(key string, value interface{}) Entry
	ErrorAdd(err ...error) Entry
	Log()
}

type entry struct {
	log  *logrus.Logger
	lvl  loglvl.Level
	msg  string
	flds logrus.Fields
	errs []error
}

// New builds an Entry that writes to log at lvl when Log is called.
func New(log *logrus.Logger, lvl loglvl.Level, message string) Entry {
	return &entry{log: log, lvl: lvl, msg: message, flds: logrus.Fields{}}
}

func (e *entry) FieldAdd(key string, value interface{}) Entry {
	e.flds[key] = value
	return e
}

func (e *entry) ErrorAdd(err ...error) Entry {
	for _, er := range err {
		if er != nil {
			e.errs = append(e.errs, er)
		}
	}
	return e
}

func (e *entry) Log() {
	if e.log == nil {
		return
	}

	le := e.log.WithFields(e.flds)

	if len(e.errs) > 0 {
		msgs := make([]string, 0, len(e.errs))
		for _, er := range e.errs {
			msgs = append(msgs, er.Error())
		}
		le = le.WithField("errors", msgs)
	}

	le.Log(e.lvl.Logrus(), e.msg)
}
