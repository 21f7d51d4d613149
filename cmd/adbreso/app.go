package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adb-reso/adb-reso-go/internal/catalog"
	"github.com/adb-reso/adb-reso-go/internal/clipboard"
	"github.com/adb-reso/adb-reso-go/internal/composer"
	"github.com/adb-reso/adb-reso-go/internal/config"
	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/adb-reso/adb-reso-go/internal/repository"
	"github.com/adb-reso/adb-reso-go/internal/service"
	"github.com/adb-reso/adb-reso-go/internal/session"
	"github.com/adb-reso/adb-reso-go/internal/validation"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Copier 剪贴板写入
type Copier interface {
	Copy(ctx context.Context, text string) (clipboard.Method, error)
}

// App 命令行入口，每次调用使用一个临时会话
type App struct {
	svc    service.EngineService
	clip   Copier
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *logrus.Logger

	cli *cli.App
}

// NewApp 创建命令行应用；服务在 Before 中按 --config 初始化
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	a := &App{in: in, out: out, errOut: errOut}
	a.cli = a.createCLI()
	return a
}

// Run 执行命令行
func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

func (a *App) createCLI() *cli.App {
	return &cli.App{
		Name:      "adbreso",
		Usage:     "Generate adb commands for display resolution and density",
		Version:   Version,
		Reader:    a.in,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (defaults only when empty)",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "copy the generated block to the clipboard",
			},
			&cli.StringFlag{
				Name:  "script",
				Usage: "also wrap the generated block into a script for `METHOD` (termux, ladb, shizuku)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "resolution",
				Aliases:   []string{"res"},
				Usage:     "Custom resolution command",
				ArgsUsage: "WIDTH HEIGHT | WIDTHxHEIGHT",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "auto-dpi", Usage: "append a density line computed from the short side"},
				},
				Action: a.resolutionCommand,
			},
			{
				Name:   "presets",
				Usage:  "List resolution presets",
				Action: a.presetsCommand,
			},
			{
				Name:      "preset",
				Usage:     "Command for a resolution preset",
				ArgsUsage: "ID",
				Action:    a.presetCommand,
			},
			{
				Name:  "dpi",
				Usage: "Scale the native density to a target width",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "native-width", Usage: "native screen width in pixels"},
					&cli.StringFlag{Name: "native-dpi", Usage: "native density"},
					&cli.StringFlag{Name: "target-width", Usage: "target width in pixels"},
				},
				Action: a.dpiCommand,
			},
			{
				Name:      "density",
				Aliases:   []string{"dpi-preset"},
				Usage:     "Command for a density value",
				ArgsUsage: "DPI",
				Action:    a.densityCommand,
			},
			{
				Name:   "tiers",
				Usage:  "List density tiers",
				Action: a.tiersCommand,
			},
			{
				Name:   "commands",
				Usage:  "List the adb command reference",
				Action: a.commandsCommand,
			},
			{
				Name:      "command",
				Usage:     "Print one reference command",
				ArgsUsage: "ID",
				Action:    a.commandCommand,
			},
			{
				Name:   "methods",
				Usage:  "List script execution methods",
				Action: a.methodsCommand,
			},
			{
				Name:  "script",
				Usage: "Wrap a command block read from stdin into a script",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "method", Aliases: []string{"m"}, Required: true, Usage: "termux, ladb or shizuku"},
					&cli.StringFlag{Name: "from-file", Aliases: []string{"f"}, Usage: "read the command block from a file"},
				},
				Action: a.scriptCommand,
			},
		},
		Before:         a.beforeAction,
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (a *App) beforeAction(c *cli.Context) error {
	if a.logger == nil {
		a.logger = logrus.New()
		a.logger.SetOutput(a.errOut)
		a.logger.SetLevel(logrus.WarnLevel)
	}
	if a.clip == nil {
		a.clip = clipboard.NewWriter(os.Stdout, a.logger)
	}
	if a.svc != nil {
		return nil
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), 1)
	}

	tiers, err := cfg.DPI.Table()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// 与服务端共享自动应用开关
	db, err := repository.InitDB(c.Context, &cfg.Database, a.logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open settings database: %v", err), 1)
	}

	store := session.NewStore(0, a.logger)
	a.svc = service.NewEngineService(store, repository.NewSettingRepository(db, cfg.Storage.SettingsKey), nil, tiers, a.logger)
	if err := a.svc.LoadSettings(c.Context); err != nil {
		a.logger.WithError(err).Warn("Failed to load settings")
	}
	return nil
}

func (a *App) resolutionCommand(c *cli.Context) error {
	width, height := c.Args().Get(0), c.Args().Get(1)
	// 单个参数且带分隔符时按 1080x2400 解析
	if c.NArg() == 1 && strings.ContainsAny(width, "xX×") {
		r, err := validation.ParseResolution(width)
		if err != nil {
			return fail(err)
		}
		width, height = strconv.Itoa(r.Width), strconv.Itoa(r.Height)
	}

	sid := a.svc.CreateSession().ID
	res, err := a.svc.GenerateResolution(c.Context, service.ResolutionInput{
		SessionID: sid,
		Width:     validation.Text(width),
		Height:    validation.Text(height),
		AutoDPI:   c.Bool("auto-dpi"),
	})
	if err != nil {
		return fail(err)
	}
	return a.emitCommand(c, sid, res)
}

func (a *App) presetsCommand(c *cli.Context) error {
	for _, p := range catalog.Presets() {
		fmt.Fprintf(a.out, "%-12s %-24s %-10s %d dpi\n", p.ID, p.Title, p.Resolution, p.Density)
	}
	return nil
}

func (a *App) presetCommand(c *cli.Context) error {
	sid := a.svc.CreateSession().ID
	res, err := a.svc.SelectPreset(c.Context, sid, c.Args().First())
	if err != nil {
		return fail(err)
	}
	return a.emitCommand(c, sid, res)
}

func (a *App) dpiCommand(c *cli.Context) error {
	sid := a.svc.CreateSession().ID
	res, err := a.svc.CalculateDPI(c.Context, service.DPIInput{
		SessionID:   sid,
		NativeWidth: validation.Text(c.String("native-width")),
		NativeDPI:   validation.Text(c.String("native-dpi")),
		TargetWidth: validation.Text(c.String("target-width")),
	})
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(a.errOut, "density %d (%s, scale %s)\n", res.Density, res.Tier.Label, res.ScaleFactor)
	return a.emitCommand(c, sid, &res.CommandResult)
}

func (a *App) densityCommand(c *cli.Context) error {
	sid := a.svc.CreateSession().ID
	res, err := a.svc.ApplyDensityPreset(c.Context, sid, c.Args().First())
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(a.errOut, "density %d (%s)\n", res.Density, res.Tier.Label)
	return a.emitCommand(c, sid, &res.CommandResult)
}

func (a *App) tiersCommand(c *cli.Context) error {
	lower := 0
	for _, t := range a.svc.Tiers() {
		fmt.Fprintf(a.out, "%-10s %4d+  %s\n", t.Tier, lower, t.Label)
		lower = t.Upper
	}
	return nil
}

func (a *App) commandsCommand(c *cli.Context) error {
	for _, g := range catalog.CommandGroups() {
		fmt.Fprintf(a.out, "%s\n", g.Category)
		for _, cmd := range g.Commands {
			fmt.Fprintf(a.out, "  %-20s %s\n", cmd.ID, cmd.Title)
		}
	}
	return nil
}

func (a *App) commandCommand(c *cli.Context) error {
	sid := a.svc.CreateSession().ID
	res, err := a.svc.SelectCommand(c.Context, sid, c.Args().First())
	if err != nil {
		return fail(err)
	}
	return a.emitCommand(c, sid, res)
}

func (a *App) methodsCommand(c *cli.Context) error {
	for _, m := range catalog.Methods() {
		fmt.Fprintf(a.out, "%-8s %-10s %s\n", m.ID, m.DisplayName, m.Summary)
	}
	return nil
}

func (a *App) scriptCommand(c *cli.Context) error {
	var src io.Reader = a.in
	if path := c.String("from-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		src = f
	}

	block, err := io.ReadAll(src)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	method := domain.MethodID(strings.ToLower(c.String("method")))
	script, err := composer.ScriptFromOutput(method, string(block))
	if err != nil {
		return fail(err)
	}
	return a.emit(c, script)
}

// emitCommand 输出命令块；带 --script 时在同一会话中生成脚本并输出脚本
func (a *App) emitCommand(c *cli.Context, sid string, res *service.CommandResult) error {
	a.notice(res.Notification)
	if res.Apply != nil {
		for _, attempt := range res.Apply.Attempts {
			fmt.Fprintf(a.errOut, "apply via %s: %s\n", attempt.Kind, attempt.URI)
		}
	}

	method := c.String("script")
	if method == "" {
		return a.emit(c, res.Output)
	}

	script, err := a.svc.GenerateScript(sid, domain.MethodID(strings.ToLower(method)))
	if err != nil {
		return fail(err)
	}
	a.notice(script.Notification)
	return a.emit(c, script.Script)
}

func (a *App) emit(c *cli.Context, text string) error {
	fmt.Fprintln(a.out, text)

	if !c.Bool("copy") {
		return nil
	}
	how, err := a.clip.Copy(c.Context, text)
	if err != nil {
		fmt.Fprintf(a.errOut, "copy failed: %s\n", domain.UserMessage(err))
		return nil
	}
	a.logger.WithField("method", how).Debug("Copied to clipboard")
	fmt.Fprintln(a.errOut, "Copied to clipboard!")
	return nil
}

func (a *App) notice(n domain.Notification) {
	if n.Message == "" {
		return
	}
	fmt.Fprintf(a.errOut, "[%s] %s\n", n.Type, n.Message)
}

func fail(err error) error {
	return cli.Exit(domain.UserMessage(err), 1)
}
