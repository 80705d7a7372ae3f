/*
 * @File : diag
 * @Date : 2025/1/27
 * @Author : Assistant
 * @Version: 1.0.0
 * @Description: 分级诊断消息通道，核心逻辑只依赖Sink接口，不感知具体输出方式
 */

package diag

import (
	"fmt"
	"sync"

	"myhp/logger"
)

// Level 诊断消息级别
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

// Message 一条诊断消息，Context为表/字段上下文（如 "orders.amount"）
type Message struct {
	Level   Level
	Context string
	Text    string
}

// Sink 可记录分级诊断消息的能力
type Sink interface {
	Emit(msg Message)
}

// Emitf 格式化并发送一条消息
func Emitf(s Sink, level Level, context, format string, args ...interface{}) {
	if s == nil {
		return
	}
	s.Emit(Message{Level: level, Context: context, Text: fmt.Sprintf(format, args...)})
}

// LogSink 将诊断消息转发到logger（带颜色的控制台输出或日志文件）
type LogSink struct{}

func (LogSink) Emit(msg Message) {
	text := msg.Text
	if msg.Context != "" {
		text = msg.Context + ": " + text
	}
	switch msg.Level {
	case Success:
		logger.Success("%s", text)
	case Warning:
		logger.Warn("%s", text)
	case Error:
		logger.Error("%s", text)
	default:
		logger.Info("%s", text)
	}
}

// Recorder 捕获型Sink，测试中用于检查产生了哪些诊断消息
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Emit(msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages 返回已捕获消息的副本
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// CountLevel 统计指定级别的消息数量
func (r *Recorder) CountLevel(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.Level == level {
			n++
		}
	}
	return n
}
