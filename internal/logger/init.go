package logger

import "github.com/sirupsen/logrus"

// One rotating log per subsystem. Settlement carries the data-quality
// warnings (ambiguous ranges, rejected transactions) auditors read.
var (
	Settlement   *logrus.Logger
	Dispatch     *logrus.Logger
	Solicitation *logrus.Logger
)

func Init() {
	Settlement = NewLogger("settlement")
	Dispatch = NewLogger("dispatch")
	Solicitation = NewLogger("solicitation")
}
