package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	companionoutadapter "zazen/internal/modules/companion/adapter/out"
	companionin "zazen/internal/modules/companion/port/in"
	companionservice "zazen/internal/modules/companion/service"
	companionusecase "zazen/internal/modules/companion/usecase"
	historyinadapter "zazen/internal/modules/history/adapter/in"
	historyoutadapter "zazen/internal/modules/history/adapter/out"
	historyservice "zazen/internal/modules/history/service"
	historyusecase "zazen/internal/modules/history/usecase"
	sessioninadapter "zazen/internal/modules/session/adapter/in"
	sessionoutadapter "zazen/internal/modules/session/adapter/out"
	sessionservice "zazen/internal/modules/session/service"
	sessionusecase "zazen/internal/modules/session/usecase"
	statsinadapter "zazen/internal/modules/stats/adapter/in"
	statsservice "zazen/internal/modules/stats/service"
	statsusecase "zazen/internal/modules/stats/usecase"
	syncinadapter "zazen/internal/modules/sync/adapter/in"
	syncoutadapter "zazen/internal/modules/sync/adapter/out"
	syncservice "zazen/internal/modules/sync/service"
	syncusecase "zazen/internal/modules/sync/usecase"
	"zazen/internal/platform/clock"
	"zazen/internal/platform/config"
	"zazen/internal/platform/id"
	"zazen/internal/platform/logging"
	uiapp "zazen/internal/ui/app"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	SyncCLI    syncinadapter.CLIHandler
	Companion  companionin.Usecase

	cfg   config.Config
	store *historyoutadapter.SQLiteBlobStore
}

func New(cfg config.Config) (*App, error) {
	log := logging.New(cfg.LogLevel)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	store, err := historyoutadapter.NewSQLiteBlobStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	syncUC := syncusecase.NewInteractor(syncservice.NewSyncService(
		syncoutadapter.NewFileManifestStore(cfg.HomePath),
		syncoutadapter.NewGRPCHost(),
	), log)

	historyUC := historyusecase.NewInteractor(
		historyservice.NewHistoryService(store), syncUC, log)
	if err := historyUC.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	// The timer publishes lifecycle events through the companion bridge and
	// the bridge feeds heart-rate samples back into the timer, so the sample
	// sink is bound after both sides exist.
	sampleSink := companionoutadapter.NewSessionSampleSink()
	companionUC := companionusecase.NewInteractor(
		companionservice.NewCompanionService(),
		companionoutadapter.NewWSTransport(log),
		sampleSink,
		log,
	)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewTimerService(clk, ids),
		sessionoutadapter.NewFileActiveSessionStore(cfg.HomePath),
		historyUC,
		syncUC,
		sessionoutadapter.NewCompanionPublisher(companionUC),
		log,
	)
	sampleSink.Bind(sessionUC)

	statsUC := statsusecase.NewInteractor(
		statsservice.NewStatsService(nil), historyUC, clk)

	return &App{
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		HistoryCLI: historyinadapter.NewCLIHandler(historyUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		SyncCLI:    syncinadapter.NewCLIHandler(syncUC),
		Companion:  companionUC,
		cfg:        cfg,
		store:      store,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func RunTUI(cfg config.Config, app *App) error {
	model := uiapp.NewModel(cfg.DefaultDuration, app.SessionCLI, app.HistoryCLI, app.StatsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
