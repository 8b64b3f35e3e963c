// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package log

import (
	"fmt"
	"io"
	goLog "log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Print level constants, lowest to highest.  A logger prints every
// record at or above its configured level.
const (
	LevelDebug uint8 = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelOff
)

const (
	defaultPerLogFileSizeMb int64 = 20
	defaultLogsFolderSizeGb int64 = 2

	logFileName = "node.log"
)

var levelTags = [...]string{"[DBG]", "[INF]", "[WRN]", "[ERR]", "[FAT]"}

// Path is the default folder the node writes its logs into.
var Path = filepath.Join(".", "logs")

var std *Logger

type Logger struct {
	level uint8
	out   *goLog.Logger
}

// NewDefault creates a logger that writes to stdout and, when path is
// not empty, to a size-rotated file under path.  maxPerLogSizeMb and
// maxLogsSizeGb bound the size of one file and of the whole folder;
// zero picks the defaults.
func NewDefault(path string, level uint8, maxPerLogSizeMb, maxLogsSizeGb int64) *Logger {
	if maxPerLogSizeMb == 0 {
		maxPerLogSizeMb = defaultPerLogFileSizeMb
	}
	if maxLogsSizeGb == 0 {
		maxLogsSizeGb = defaultLogsFolderSizeGb
	}

	var writer io.Writer = os.Stdout
	if path != "" {
		rolling := &lumberjack.Logger{
			Filename:   filepath.Join(path, logFileName),
			MaxSize:    int(maxPerLogSizeMb),
			MaxBackups: int(maxLogsSizeGb * 1024 / maxPerLogSizeMb),
			LocalTime:  true,
		}
		writer = io.MultiWriter(os.Stdout, rolling)
	}

	logger := &Logger{
		level: level,
		out:   goLog.New(writer, "", goLog.Ldate|goLog.Lmicroseconds),
	}
	std = logger
	return logger
}

// Init sets up the package level logger.
func Init(path string, level uint8, maxPerLogSizeMb, maxLogsSizeGb int64) {
	NewDefault(path, level, maxPerLogSizeMb, maxLogsSizeGb)
}

func (l *Logger) print(level uint8, a ...interface{}) {
	if l == nil || level < l.level || level >= LevelOff {
		return
	}
	l.out.Print(levelTags[level], " ", fmt.Sprint(a...))
}

func (l *Logger) printf(level uint8, format string, a ...interface{}) {
	if l == nil || level < l.level || level >= LevelOff {
		return
	}
	l.out.Print(levelTags[level], " ", fmt.Sprintf(format, a...))
}

func (l *Logger) Debug(a ...interface{}) { l.print(LevelDebug, a...) }
func (l *Logger) Info(a ...interface{})  { l.print(LevelInfo, a...) }
func (l *Logger) Warn(a ...interface{})  { l.print(LevelWarn, a...) }
func (l *Logger) Error(a ...interface{}) { l.print(LevelError, a...) }
func (l *Logger) Fatal(a ...interface{}) { l.print(LevelFatal, a...) }

func (l *Logger) Debugf(format string, a ...interface{}) { l.printf(LevelDebug, format, a...) }
func (l *Logger) Infof(format string, a ...interface{})  { l.printf(LevelInfo, format, a...) }
func (l *Logger) Warnf(format string, a ...interface{})  { l.printf(LevelWarn, format, a...) }
func (l *Logger) Errorf(format string, a ...interface{}) { l.printf(LevelError, format, a...) }
func (l *Logger) Fatalf(format string, a ...interface{}) { l.printf(LevelFatal, format, a...) }

// SetPrintLevel changes the level records must reach to be printed.
func (l *Logger) SetPrintLevel(level uint8) {
	l.level = level
}

func Debug(a ...interface{}) { std.print(LevelDebug, a...) }
func Info(a ...interface{})  { std.print(LevelInfo, a...) }
func Warn(a ...interface{})  { std.print(LevelWarn, a...) }
func Error(a ...interface{}) { std.print(LevelError, a...) }
func Fatal(a ...interface{}) { std.print(LevelFatal, a...) }

func Debugf(format string, a ...interface{}) { std.printf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { std.printf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { std.printf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { std.printf(LevelError, format, a...) }
func Fatalf(format string, a ...interface{}) { std.printf(LevelFatal, format, a...) }
