package rowan

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetDebugTogglesLogLevel(t *testing.T) {
	orig := Logger().GetLevel()
	defer SetDebug(orig == log.DebugLevel)

	SetDebug(true)
	if Logger().GetLevel() != log.DebugLevel {
		t.Errorf("level = %v after SetDebug(true), want debug", Logger().GetLevel())
	}

	SetDebug(false)
	if Logger().GetLevel() != log.WarnLevel {
		t.Errorf("level = %v after SetDebug(false), want warn", Logger().GetLevel())
	}
}
