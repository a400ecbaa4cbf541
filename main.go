package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := execute(os.Stderr, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// newLogger 创建带时间戳的日志器，时间格式为 "HH:MM:SS.ms"。
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// execute 构建命令树并运行，日志写入 stderr。
func execute(stderr io.Writer, args []string) error {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:           "vitae",
		Short:         "vitae 将 YAML 简历排版为定页数的 PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			ctx := context.WithValue(cmd.Context(), loggerKey, newLogger(stderr, level))
			cmd.SetContext(ctx)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML 配置文件路径")

	root.AddCommand(newRenderCmd(&configPath))
	root.AddCommand(newPlanCmd(&configPath))
	root.AddCommand(newScriptCmd(&configPath))
	root.AddCommand(newExampleCmd())

	root.SetArgs(args)
	// 日志器挂在实际执行的子命令上。
	if cmd, err := root.ExecuteContextC(context.Background()); err != nil {
		loggerFromContext(cmd.Context()).Error(err)
		return err
	}
	return nil
}
