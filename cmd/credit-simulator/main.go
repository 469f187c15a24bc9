package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/config"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/logging"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/simulation"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/internal/tracing"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/adapters"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/datetime"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/output"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// requestFlags holds the loan parameters given on the command line. Negative
// numbers mean "use the configured default".
type requestFlags struct {
	mode        string
	price       float64
	down        float64
	downMode    string
	term        int
	bank        string
	system      string
	start       string
	directModel string
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	listBanks := flag.Bool("list-banks", false, "list the available banks and exit")
	dumpConfig := flag.Bool("dump-config", false, "print the effective configuration as YAML and exit")

	var rf requestFlags
	flag.StringVar(&rf.mode, "mode", string(loans.ModeDirect), "financing mode: DIRECT or BANK")
	flag.Float64Var(&rf.price, "price", 0, "vehicle price")
	flag.Float64Var(&rf.down, "down", -1, "down payment value (default: configured percentage)")
	flag.StringVar(&rf.downMode, "down-mode", "", "down payment mode: amount or percentage")
	flag.IntVar(&rf.term, "term", -1, "term in months (default: configured term)")
	flag.StringVar(&rf.bank, "bank", "", "bank id for BANK loans")
	flag.StringVar(&rf.system, "system", "", "amortization system: FRENCH or GERMAN (default: configured system)")
	flag.StringVar(&rf.start, "start", "", "start date YYYY-MM-DD (default: today)")
	flag.StringVar(&rf.directModel, "direct-policy", "", "direct decomposition override: flat or amortized")
	flag.Parse()

	// A missing .env is the common case.
	envErr := godotenv.Load()

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env file",
			zap.String("op", "main"),
			zap.Error(envErr),
		)
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *dumpConfig {
		if err := conf.WriteYAML(os.Stdout); err != nil {
			logger.Fatal("failed to write configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	cat, err := conf.Catalog()
	if err != nil {
		logger.Fatal("failed to build bank catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *listBanks {
		output.BankListFormat(os.Stdout, cat.Profiles())
		return
	}

	directOpts, err := conf.DirectOptions()
	if err != nil {
		logger.Fatal("invalid direct policy",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if rf.directModel != "" {
		policy, err := loans.ParseDirectPolicy(rf.directModel)
		if err != nil {
			logger.Fatal("invalid -direct-policy",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		directOpts.Policy = policy
	}

	req, err := buildRequest(rf, conf)
	if err != nil {
		logger.Fatal("invalid loan parameters",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx := context.Background()
	provider, err := tracing.InitTracing(ctx, tracing.Config{
		Endpoint:    conf.Tracing.Endpoint,
		ServiceName: conf.Tracing.ServiceName,
	}, logger)
	if err != nil {
		logger.Warn("tracing disabled",
			zap.String("op", "main"),
			zap.Error(err),
		)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = provider.Shutdown(shutdownCtx)
		}()
	}

	sim := simulation.New(logger, cat, conf.DirectTerms(), simulation.Options{Direct: directOpts})
	result, err := sim.Run(ctx, req)
	if err != nil {
		logger.Error("failed to compute schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	}

	view := adapters.Present(result)
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, view)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, view)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(os.Stdout, view); err != nil {
			logger.Error("failed to write schedule",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

// loadConfiguration reads the config file. The default file is optional;
// an explicitly named one must exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.LoadConfiguration(path)
}

func buildRequest(rf requestFlags, conf *config.Configuration) (loans.LoanRequest, error) {
	mode, err := loans.ParseMode(rf.mode)
	if err != nil {
		return loans.LoanRequest{}, err
	}

	system := conf.DefaultSystem()
	if rf.system != "" {
		if system, err = loans.ParseSystem(rf.system); err != nil {
			return loans.LoanRequest{}, err
		}
	}

	down := loans.DownPayment{Mode: loans.DownPaymentPercentage, Value: conf.Defaults.DownPaymentPercent}
	if rf.down >= 0 {
		dpMode, err := loans.ParseDownPaymentMode(rf.downMode)
		if err != nil {
			return loans.LoanRequest{}, err
		}
		down = loans.DownPayment{Mode: dpMode, Value: rf.down}
	}

	term := conf.Defaults.TermMonths
	if rf.term >= 0 {
		term = rf.term
	}

	start, err := datetime.ParseDate(rf.start)
	if err != nil {
		return loans.LoanRequest{}, fmt.Errorf("invalid -start %q: %w", rf.start, err)
	}

	if mode == loans.ModeBank && rf.bank == "" {
		return loans.LoanRequest{}, errors.New("-bank is required for BANK loans")
	}

	return loans.LoanRequest{
		VehiclePrice: rf.price,
		DownPayment:  down,
		TermMonths:   term,
		Mode:         mode,
		BankID:       rf.bank,
		System:       system,
		StartDate:    start,
	}, nil
}
