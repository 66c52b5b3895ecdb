// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides the module logger used throughout the devnode, in the
// same calling convention as the teacher's "github.com/klaytn/klaytn/log"
// package: construct one logger per package with NewModuleLogger(module) and
// log key/value pairs with Info/Debug/Warn/Error/Trace/Crit. The transport
// (file vs stderr, verbosity flags) is out of scope; only the call surface
// and default stderr handler are provided here.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
)

// Module identifies the subsystem a logger belongs to; used as a fixed
// "module" key/value pair on every line the logger emits.
type Module string

const (
	Common       Module = "common"
	Storage      Module = "storage"
	TxPool       Module = "txpool"
	ChainIndex   Module = "chainindex"
	Filters      Module = "filters"
	VM           Module = "vm"
	NodeInner    Module = "node"
	Executor     Module = "executor"
	Sealer       Module = "sealer"
	GasEstimator Module = "gasestimator"
	Time         Module = "time"
)

type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var lvlNames = map[Lvl]string{
	LvlCrit:  "CRIT",
	LvlError: "ERROR",
	LvlWarn:  "WARN",
	LvlInfo:  "INFO",
	LvlDebug: "DEBUG",
	LvlTrace: "TRACE",
}

var lvlColor = map[Lvl]color.Attribute{
	LvlCrit:  color.FgMagenta,
	LvlError: color.FgRed,
	LvlWarn:  color.FgYellow,
	LvlInfo:  color.FgGreen,
	LvlDebug: color.FgCyan,
	LvlTrace: color.FgWhite,
}

// Logger is the interface every package-level `logger` variable satisfies.
type Logger interface {
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

var (
	globalMu  sync.Mutex
	globalLvl = LvlInfo
	out       = colorable.NewColorableStderr()
)

// SetGlobalLevel bounds the verbosity of every module logger; lines below the
// configured level are dropped. Exposed for test harnesses and the excluded
// CLI layer to wire up a --verbosity flag against.
func SetGlobalLevel(l Lvl) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLvl = l
}

type moduleLogger struct {
	module Module
}

// NewModuleLogger returns a Logger tagging every line with module.
func NewModuleLogger(module Module) Logger {
	return &moduleLogger{module: module}
}

func (l *moduleLogger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *moduleLogger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *moduleLogger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *moduleLogger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *moduleLogger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *moduleLogger) Crit(msg string, ctx ...interface{})  { l.write(LvlCrit, msg, ctx) }

func (l *moduleLogger) write(lvl Lvl, msg string, ctx []interface{}) {
	globalMu.Lock()
	active := globalLvl
	globalMu.Unlock()
	if lvl > active {
		return
	}

	caller := callerInfo()
	c := color.New(lvlColor[lvl]).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s[%-5s]%s %-30s %s",
		time.Now().Format("01-02|15:04:05.000"),
		"", c(lvlNames[lvl]), "", string(l.module)+" "+caller, msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(&b, " %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(out, b.String())

	if lvl == LvlCrit {
		os.Exit(1)
	}
}

// callerInfo captures the immediate caller of the logging package using
// go-stack/stack, skipping the log package's own frames.
func callerInfo() string {
	cs := stack.Trace().TrimRuntime()
	if len(cs) < 4 {
		return ""
	}
	call := cs[3]
	return fmt.Sprintf("%+v", call)
}
