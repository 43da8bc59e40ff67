package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/ai"
	"github.com/jobscoutdev/jobscout/internal/ai/gemini"
	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/logger"
	"github.com/jobscoutdev/jobscout/internal/pipeline"
	"github.com/jobscoutdev/jobscout/internal/progress"
	"github.com/jobscoutdev/jobscout/internal/secrets"
	"github.com/jobscoutdev/jobscout/internal/source"
	"github.com/jobscoutdev/jobscout/internal/source/adzuna"
	"github.com/jobscoutdev/jobscout/internal/source/francetravail"
	"github.com/jobscoutdev/jobscout/internal/source/jooble"
	"github.com/jobscoutdev/jobscout/internal/source/wttj"
	"github.com/jobscoutdev/jobscout/internal/store"
)

const (
	PromptReportByCompany = "Report by company"
	PromptResultsToFile   = "Dump results to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReportByCompany, PromptResultsToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one search for the configured profile",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "skip the interactive menu after the run")
	runCmd.Flags().StringP("output", "o", "", "write the ranked results to the given file")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}
	if config.Profile == nil {
		logger.Fatal("a candidate profile is required under the 'profile' key")
	}

	adapters := prepareAdapters(config, logger)
	if len(adapters) == 0 {
		logger.Fatal("no source adapters configured",
			zap.String("hint", "configure at least one source under the 'sources' key"),
		)
	}

	opts := []pipeline.Option{
		pipeline.WithAgencyDenylist(config.AgencyDenylist),
		pipeline.WithAdapterTimeout(config.AdapterTimeout),
	}

	if reranker, err := prepareReranker(ctx, config.AI, logger); err != nil {
		logger.Warn("running without semantic re-ranking", zap.Error(err))
	} else if reranker != nil {
		opts = append(opts, pipeline.WithReranker(reranker))
		if config.AI.RerankTimeout > 0 {
			opts = append(opts, pipeline.WithRerankTimeout(config.AI.RerankTimeout))
		}
	}

	if config.DatabaseURL != "" {
		results, err := store.New(ctx, config.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("connecting to postgres", zap.Error(err))
		}
		defer results.Close()
		opts = append(opts, pipeline.WithResultSink(results))
	}

	var sink progress.Sink = progress.NewMemorySink()
	if config.RedisURL != "" {
		redisSink, err := progress.NewRedisSink(ctx, config.RedisURL)
		if err != nil {
			logger.Fatal("connecting to redis", zap.Error(err))
		}
		defer redisSink.Close()
		sink = redisSink
	}

	searchID := uuid.NewString()
	tracker := progress.NewTracker(searchID, sink, logger)

	results, err := pipeline.New(adapters, logger, opts...).Run(ctx, config.Profile, tracker)
	if err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}

	logger.Info("search finished",
		zap.String("search_id", searchID),
		zap.Int("results", results.Len()),
	)

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no matching postings found"))
		return
	}

	if output := cmd.Flag("output").Value.String(); output != "" {
		if err := results.DumpToFile(output); err != nil {
			logger.Fatal("dumping results to file", zap.Error(err))
		}
		logger.Info("dumped results to file", zap.String("filename", output))
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, results *jobs.Jobs) error {
	switch action {
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(results.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("results count", results.Len()))
		return nil
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// prepareAdapters builds a client per configured source. A source with
// missing credentials is skipped with a warning rather than failing
// the run.
func prepareAdapters(config *Config, logger *zap.Logger) []source.Adapter {
	adapters := make([]source.Adapter, 0, 4)
	if config.Sources == nil {
		return adapters
	}

	if cfg := config.Sources.Adzuna; cfg != nil {
		appID, idErr := secrets.Load(secrets.Source{
			Name: "adzuna app id",
			File: cfg.AppIDFile,
			Env:  "ADZUNA_APP_ID_FILE",
		})
		appKey, keyErr := secrets.Load(secrets.Source{
			Name: "adzuna app key",
			File: cfg.AppKeyFile,
			Env:  "ADZUNA_APP_KEY_FILE",
		})
		if err := errors.Join(idErr, keyErr); err != nil {
			logger.Warn("skipping adzuna", zap.Error(err))
		} else {
			adapters = append(adapters, adzuna.New(appID, appKey, cfg.Country, logger))
		}
	}

	if cfg := config.Sources.Jooble; cfg != nil {
		apiKey, err := secrets.Load(secrets.Source{
			Name: "jooble api key",
			File: cfg.APIKeyFile,
			Env:  "JOOBLE_API_KEY_FILE",
		})
		if err != nil {
			logger.Warn("skipping jooble", zap.Error(err))
		} else {
			adapters = append(adapters, jooble.New(apiKey, logger))
		}
	}

	if cfg := config.Sources.FranceTravail; cfg != nil {
		token, err := secrets.Load(secrets.Source{
			Name: "france travail token",
			File: cfg.TokenFile,
			Env:  "FRANCETRAVAIL_TOKEN_FILE",
		})
		if err != nil {
			logger.Warn("skipping francetravail", zap.Error(err))
		} else {
			adapters = append(adapters, francetravail.New(token, logger))
		}
	}

	if cfg := config.Sources.WTTJ; cfg != nil {
		apiKey, err := secrets.Load(secrets.Source{
			Name: "wttj api key",
			File: cfg.APIKeyFile,
			Env:  "WTTJ_API_KEY_FILE",
		})
		if err != nil {
			logger.Warn("skipping wttj", zap.Error(err))
		} else {
			adapters = append(adapters, wttj.New(cfg.AppID, apiKey, logger))
		}
	}

	return adapters
}

func prepareReranker(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Reranker, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY_FILE",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	rerankerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewReranker(generator, rerankerLogger, cfg.Gemini.MaxLogLength), nil
}
