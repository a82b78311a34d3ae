// Package menu is the interactive terminal front end: process maps, view and edit the configuration.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/ByLCY/territorio/batch"
	"github.com/ByLCY/territorio/config"
	"github.com/ByLCY/territorio/i18n"
)

// ErrInterrupted 用户按下 Ctrl+C。
var ErrInterrupted = errors.New("menu: 已中断")

// ProcessFunc 使用当前配置执行一次批处理。
type ProcessFunc func(cfg *config.AppConfig) (*batch.Summary, error)

var (
	styleTitle    = color.Style{color.FgCyan, color.OpBold}
	styleSelected = color.Style{color.FgBlack, color.BgCyan}
	styleSubtle   = color.Style{color.FgGray}
	styleOK       = color.Style{color.FgGreen}
	styleError    = color.Style{color.FgRed, color.OpBold}
	styleLabel    = color.Style{color.FgBlue}
)

const (
	itemProcess = iota
	itemView
	itemEdit
	itemSave
	itemExit
)

// Menu 持有正在编辑的配置。
type Menu struct {
	in      *bufio.Reader
	out     io.Writer
	fd      int
	raw     *term.State
	cfg     *config.AppConfig
	path    string
	process ProcessFunc
	status  string
}

// New 创建使用标准输入输出的菜单；标准输入是终端时启用原始模式读取按键。
func New(cfg *config.AppConfig, path string, process ProcessFunc) *Menu {
	m := NewWithIO(os.Stdin, os.Stdout, cfg, path, process)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		m.fd = fd
	}
	return m
}

// NewWithIO 创建不切换终端模式的菜单，用于管道或测试。
func NewWithIO(in io.Reader, out io.Writer, cfg *config.AppConfig, path string, process ProcessFunc) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out, fd: -1, cfg: cfg, path: path, process: process}
}

// Config 返回当前（可能已修改的）配置。
func (m *Menu) Config() *config.AppConfig { return m.cfg }

// Run 显示主菜单直到用户选择退出。
func (m *Menu) Run() error {
	if err := m.enterRaw(); err != nil {
		return err
	}
	defer m.leaveRaw()

	items := []string{
		i18n.T("MENU_PROCESS"),
		i18n.T("MENU_VIEW"),
		i18n.T("MENU_EDIT"),
		i18n.T("MENU_SAVE"),
		i18n.T("MENU_EXIT"),
	}
	for {
		choice, err := m.choose(i18n.T("MENU_TITLE"), items, 0)
		if err != nil {
			return err
		}
		switch choice {
		case itemProcess:
			if err := m.runProcess(); err != nil {
				return err
			}
		case itemView:
			m.showConfig()
			if err := m.waitKey(); err != nil {
				return err
			}
		case itemEdit:
			if err := m.edit(); err != nil {
				return err
			}
		case itemSave:
			if err := m.cfg.Save(m.path); err != nil {
				m.status = styleError.Sprint(i18n.T("CONFIG_SAVE_FAILED", err.Error()))
			} else {
				m.status = styleOK.Sprint(i18n.T("CONFIG_SAVED"))
			}
		default:
			return nil
		}
	}
}

// runProcess 在常规模式下执行批处理，使进度条与日志正常换行。
func (m *Menu) runProcess() error {
	m.leaveRaw()
	m.clear()
	summary, err := m.process(m.cfg)
	summary.Print(m.out)
	if err != nil {
		m.println(styleError.Sprint(i18n.T("RUN_FAILED", err.Error())))
	}
	if err := m.enterRaw(); err != nil {
		return err
	}
	m.print(styleSubtle.Sprint(i18n.T("PRESS_ANY_KEY")))
	return m.waitKey()
}

func (m *Menu) showConfig() {
	m.clear()
	m.println(styleTitle.Sprint(i18n.T("CONFIG_TITLE")))
	m.println("")
	for _, f := range config.Fields() {
		m.println(fmt.Sprintf("  %s %s", styleLabel.Sprintf("%-22s", f.Label()), m.cfg.Get(f)))
	}
	m.println("")
	m.print(styleSubtle.Sprint(i18n.T("PRESS_ANY_KEY")))
}

func (m *Menu) edit() error {
	fields := config.Fields()
	items := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		items = append(items, fmt.Sprintf("%-22s %s", f.Label(), m.cfg.Get(f)))
	}
	items = append(items, i18n.T("EDIT_BACK"))

	selected := 0
	for {
		choice, err := m.choose(i18n.T("EDIT_TITLE"), items, selected)
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(fields) {
			return nil
		}
		selected = choice
		f := fields[choice]
		value, err := m.prompt(i18n.T("EDIT_PROMPT", f.Label(), m.cfg.Get(f)))
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		if err := m.cfg.Set(f, value); err != nil {
			m.status = styleError.Sprint(i18n.T("EDIT_INVALID", err.Error()))
			continue
		}
		items[choice] = fmt.Sprintf("%-22s %s", f.Label(), m.cfg.Get(f))
		m.status = styleOK.Sprint(i18n.T("EDIT_UPDATED", f.Label()))
	}
}

// choose 显示列表并返回选中的下标；返回 -1 表示返回上一级。
func (m *Menu) choose(title string, items []string, selected int) (int, error) {
	for {
		m.clear()
		m.println(styleTitle.Sprint(title))
		m.println("")
		for i, item := range items {
			if i == selected {
				m.println(styleSelected.Sprint("> " + item))
			} else {
				m.println("  " + item)
			}
		}
		m.println("")
		if m.status != "" {
			m.println(m.status)
			m.status = ""
		}
		m.println(styleSubtle.Sprint(i18n.T("MENU_HINT")))

		key, err := readKey(m.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return -1, nil
			}
			return -1, err
		}
		switch key {
		case KeyUp:
			selected = (selected - 1 + len(items)) % len(items)
		case KeyDown:
			selected = (selected + 1) % len(items)
		case KeyEnter:
			return selected, nil
		case KeyBack:
			return -1, nil
		case KeyInterrupt:
			return -1, ErrInterrupted
		}
	}
}

// prompt 在常规模式下读取一行输入。
func (m *Menu) prompt(label string) (string, error) {
	m.leaveRaw()
	defer m.enterRaw()

	m.print(label)
	line, err := m.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) waitKey() error {
	_, err := readKey(m.in)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) enterRaw() error {
	if m.fd < 0 || m.raw != nil {
		return nil
	}
	state, err := term.MakeRaw(m.fd)
	if err != nil {
		return fmt.Errorf("无法切换终端到原始模式: %w", err)
	}
	m.raw = state
	return nil
}

func (m *Menu) leaveRaw() {
	if m.raw == nil {
		return
	}
	term.Restore(m.fd, m.raw)
	m.raw = nil
}

func (m *Menu) clear() {
	if m.fd >= 0 {
		fmt.Fprint(m.out, "\033[H\033[2J")
	}
}

// 原始模式下需要显式回车。
func (m *Menu) println(s string) { fmt.Fprint(m.out, s+"\r\n") }

func (m *Menu) print(s string) { fmt.Fprint(m.out, s) }
