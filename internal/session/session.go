package session

import (
	"time"

	"github.com/adb-reso/adb-reso-go/internal/domain"
)

// Category 选择类别，每个类别同一时间最多一个选中项
type Category string

const (
	CategoryPreset        Category = "preset"
	CategoryCommand       Category = "command"
	CategoryMethod        Category = "method"
	CategoryDensityPreset Category = "dpi-preset"
)

// 每个类别对应的输出区域，清除选择时一并清空
var dependentPage = map[Category]domain.Page{
	CategoryPreset:        domain.PagePreset,
	CategoryCommand:       domain.PageCatalog,
	CategoryDensityPreset: domain.PageDPI,
	CategoryMethod:        domain.PageScript,
}

// Session 单个客户端的页面状态
//
// Session 本身不加锁，只能通过 Store.Update 修改。
type Session struct {
	ID         string
	CreatedAt  time.Time
	LastSeen   time.Time
	selections map[Category]string
	outputs    map[domain.Page]string
	commands   map[domain.Page]string
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		LastSeen:   now,
		selections: make(map[Category]string),
		outputs:    make(map[domain.Page]string),
		commands:   make(map[domain.Page]string),
	}
}

// Select 选中一项并替换同类别的旧选择，返回旧选择
func (s *Session) Select(c Category, id string) string {
	prev := s.selections[c]
	s.selections[c] = id
	return prev
}

// Selected 当前选中项
func (s *Session) Selected(c Category) (string, bool) {
	id, ok := s.selections[c]
	return id, ok
}

// Deselect 只取消选择，不动输出
func (s *Session) Deselect(c Category) {
	delete(s.selections, c)
}

// SetOutput 替换页面输出，同时清掉该页旧的可应用命令
func (s *Session) SetOutput(p domain.Page, text string) {
	delete(s.commands, p)
	if text == "" {
		delete(s.outputs, p)
		return
	}
	s.outputs[p] = text
}

// SetApplyCommand 记录页面可一键应用到设备的命令
func (s *Session) SetApplyCommand(p domain.Page, cmd string) {
	if cmd == "" {
		delete(s.commands, p)
		return
	}
	s.commands[p] = cmd
}

// ApplyCommand 页面当前可应用的命令
func (s *Session) ApplyCommand(p domain.Page) (string, bool) {
	cmd, ok := s.commands[p]
	return cmd, ok
}

// Output 页面输出，未生成时为空串
func (s *Session) Output(p domain.Page) string {
	return s.outputs[p]
}

// Clear 清除类别选择及其输出区域
func (s *Session) Clear(c Category) {
	delete(s.selections, c)
	if p, ok := dependentPage[c]; ok {
		delete(s.outputs, p)
		delete(s.commands, p)
	}
}

// ClearPage 清空一个页面的输出；清空预设/命令页时同时取消对应选择
func (s *Session) ClearPage(p domain.Page) {
	delete(s.outputs, p)
	delete(s.commands, p)
	for c, dp := range dependentPage {
		if dp == p {
			delete(s.selections, c)
		}
	}
}

// ClearAll 回到初始状态
func (s *Session) ClearAll() {
	s.selections = make(map[Category]string)
	s.outputs = make(map[domain.Page]string)
	s.commands = make(map[domain.Page]string)
}

// LatestOutput 按 domain.OutputPages 顺序返回第一个非空输出
func (s *Session) LatestOutput() (domain.Page, string, bool) {
	for _, p := range domain.OutputPages {
		if out := s.outputs[p]; out != "" {
			return p, out, true
		}
	}
	return "", "", false
}

// View 会话的只读快照
type View struct {
	ID         string                 `json:"id"`
	CreatedAt  time.Time              `json:"created_at"`
	LastSeen   time.Time              `json:"last_seen"`
	Selections map[Category]string    `json:"selections"`
	Outputs    map[domain.Page]string `json:"outputs"`
}

func (s *Session) view() View {
	v := View{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		LastSeen:   s.LastSeen,
		Selections: make(map[Category]string, len(s.selections)),
		Outputs:    make(map[domain.Page]string, len(s.outputs)),
	}
	for k, val := range s.selections {
		v.Selections[k] = val
	}
	for k, val := range s.outputs {
		v.Outputs[k] = val
	}
	return v
}
