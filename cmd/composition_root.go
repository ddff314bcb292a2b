package cmd

import (
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/geocode"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, settings and the shared clock into the
// application's command and query handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	geocoder   ports.Geocoder
	sender     ports.NotificationSender
	settings   commands.DispatchSettings
	now        func() time.Time
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the given configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	geocoder, err := geocode.NewClient(config.GeocoderBaseURL, logger)
	if err != nil {
		return nil, err
	}

	sender, err := notify.NewSender(gormDB, config.PushGatewayURL, logger)
	if err != nil {
		return nil, err
	}

	settings := commands.DispatchSettings{
		InitialRadiusKm:  config.InitialRadiusKm,
		ExpandedRadiusKm: config.ExpandedRadiusKm,
		InitialDuration:  config.InitialSearchDuration,
		ExpandedDuration: config.ExpandedSearchDuration,
		MaxLocationAge:   config.MaxLocationAge,
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   geocoder,
		sender:     sender,
		settings:   settings,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// CreateNotificationFanout builds the dedup-aware notification fanout.
func (c *CompositionRoot) CreateNotificationFanout() commands.NotificationFanout {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewNotificationFanout(f, c.sender, c.logger)
}

// CreateStartSearchCommandHandler builds the handler opening search sessions.
func (c *CompositionRoot) CreateStartSearchCommandHandler() commands.StartSearchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartSearchCommandHandler(f, c.geocoder, c.CreateNotificationFanout(),
		c.settings, c.now, c.logger)
}

// CreateRestartSearchCommandHandler builds the handler reopening stopped sessions.
func (c *CompositionRoot) CreateRestartSearchCommandHandler() commands.RestartSearchCommandHandler {
	return commands.NewRestartSearchCommandHandler(c.CreateStartSearchCommandHandler(), c.logger)
}

// CreateAcceptOrderCommandHandler builds the handler arbitrating claim attempts.
func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.logger)
}

// CreateCancelOrderCommandHandler builds the handler cancelling orders.
func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.logger)
}

// CreateUpdateDriverLocationCommandHandler builds the handler recording fixes.
func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f, c.now, c.logger)
}

// CreateProcessDueSearchesCommandHandler builds the sweep handler.
func (c *CompositionRoot) CreateProcessDueSearchesCommandHandler() commands.ProcessDueSearchesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessDueSearchesCommandHandler(f, c.geocoder, c.CreateNotificationFanout(),
		c.settings, c.now, c.logger)
}

// CreateGetSearchStatusQueryHandler builds the read-side status handler.
func (c *CompositionRoot) CreateGetSearchStatusQueryHandler() queries.GetSearchStatusQueryHandler {
	return queries.NewGetSearchStatusQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
