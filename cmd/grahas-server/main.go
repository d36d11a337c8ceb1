package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/smahajan/grahas/internal/app"
	"github.com/smahajan/grahas/internal/constants"
	"github.com/smahajan/grahas/internal/log"
	"github.com/smahajan/grahas/internal/server"
	"github.com/smahajan/grahas/pkg/coeffs"
	"github.com/smahajan/grahas/pkg/siddhanta"
)

func main() {
	listenAddr := flag.String("listen", ":8080", "host:port for the HTTP API")
	coeffFile := flag.String("coeffs", "", "Path to a JSON coefficient table (enables corrected modes)")
	coeffDB := flag.String("coeffs-db", "", "Path to a SQLite coefficient database (alternative to -coeffs)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("grahas-server %s\n", constants.Version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider, err := buildCoeffsProvider(*coeffFile, *coeffDB)
	if err != nil {
		log.Errorf("Failed to set up coefficient source: %v", err)
		os.Exit(1)
	}
	if provider != nil {
		defer provider.Close()
	}

	application := app.New(siddhanta.NewDefault(), server.Config{
		ListenAddr:     *listenAddr,
		CoeffsProvider: provider,
	}, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func buildCoeffsProvider(coeffFile, coeffDB string) (coeffs.Provider, error) {
	switch {
	case coeffFile != "" && coeffDB != "":
		return nil, fmt.Errorf("pass only one of -coeffs and -coeffs-db")
	case coeffFile != "":
		return coeffs.NewJSONProvider(coeffFile), nil
	case coeffDB != "":
		p, err := coeffs.NewSQLiteProvider(coeffDB)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, nil
	}
}
