package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/lfmartins/atelier/internal/config"
	"github.com/lfmartins/atelier/internal/loader"
	"github.com/lfmartins/atelier/internal/logger"
	"github.com/lfmartins/atelier/internal/render"
	"github.com/lfmartins/atelier/internal/site"
)

var summaryStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("10"))

func build(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level).With().
		Str("build_id", uuid.NewString()).
		Logger()
	config.SetLogger(log)
	loader.SetLogger(log)
	site.SetLogger(log)

	if out := cmd.String("output"); out != "" {
		cfg.Build.OutputDir = out
	}

	renderer := render.New(render.Options{
		SanitizeHTML:       false, // content is authored by the site owner
		SyntaxHighlighting: cfg.Theme.SyntaxHighlighting.Enabled,
		HighlightTheme:     cfg.Theme.SyntaxHighlighting.Theme,
	})

	l := loader.New(loader.Config{
		PostsDir:  cfg.Content.PostsDir,
		AboutPath: cfg.Content.AboutPath,
	}, renderer)

	s, err := site.New(cfg, l)
	if err != nil {
		return err
	}

	stats, err := s.Build()
	if err != nil {
		log.Error().Err(err).Msg("Build failed")
		return err
	}

	fmt.Println(summaryStyle.Render(fmt.Sprintf(
		"✓ built %d posts (%d files) into %s in %s",
		stats.Posts, stats.Files, cfg.Build.OutputDir, stats.Duration.Round(time.Millisecond),
	)))
	return nil
}

func initConfig(ctx context.Context, cmd *cli.Command) error {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("generating config YAML: %w", err)
	}

	header := "# Atelier configuration example\n# Copy this file to config.yaml and customize as needed\n\n"
	output := header + string(yamlData)

	outputFile := cmd.String("out")
	if outputFile == "-" {
		fmt.Print(output)
		return nil
	}

	if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "atelier",
		Usage: "Static blog and portfolio generator: markdown in, HTML out",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("ATELIER_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build the static site into the output directory",
				Action: build,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Override the configured output directory",
					},
				},
			},
			{
				Name:   "init-config",
				Usage:  "Write an example configuration file with defaults",
				Action: initConfig,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Destination file, or - for stdout",
						Value: "config.example.yaml",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
