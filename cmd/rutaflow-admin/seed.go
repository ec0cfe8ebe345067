package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/rutaflow/rutaflow/internal/bootstrap"
	"github.com/rutaflow/rutaflow/internal/core"
	"github.com/rutaflow/rutaflow/internal/data"
	"github.com/rutaflow/rutaflow/internal/domain/model"
)

func runMigrate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	return bootstrap.RunMigrations(ctx.Ctx, db, ctx.Logger)
}

type seedOrder struct {
	name    string
	phone   string
	address string
	lat     float64
	lon     float64
	window  string
	weight  float64
	notes   string
}

// Demo stops around Santiago, matching the sample data the order form ships
// with.
func demoOrders() []seedOrder {
	return []seedOrder{
		{"Ana Torres", "+56 9 1234 5678", "Av. Providencia 1234, Providencia", -33.4263, -70.6200, "09:00-12:00", 2.5, "dejar en conserjería"},
		{"Bruno Díaz", "+56 9 2345 6789", "Av. Apoquindo 4500, Las Condes", -33.4103, -70.5710, "10:00-13:00", 1.0, ""},
		{"Carla Muñoz", "+56 9 3456 7890", "Gran Avenida 5200, San Miguel", -33.4930, -70.6510, "09:00-14:00", 4.2, "timbre malo, llamar"},
		{"Diego Rojas", "+56 9 4567 8901", "Av. Irarrázaval 2800, Ñuñoa", -33.4540, -70.5980, "11:00-15:00", 0.8, ""},
		{"Elena Vargas", "+56 9 5678 9012", "Av. Pajaritos 3200, Maipú", -33.5090, -70.7540, "09:00-18:00", 3.0, ""},
		{"Felipe Soto", "+56 9 6789 0123", "Av. Recoleta 2100, Recoleta", -33.4080, -70.6410, "14:00-17:00", 1.5, "fragil"},
		{"Gabriela Pino", "+56 9 7890 1234", "Av. La Florida 9200, La Florida", -33.5440, -70.5880, "10:00-16:00", 2.0, ""},
		{"Hernán Lagos", "+56 9 8901 2345", "Av. Independencia 1500, Independencia", -33.4170, -70.6550, "09:00-12:00", 5.5, "segundo piso"},
	}
}

func runSeed(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	count := fs.Int("orders", len(demoOrders()), "number of demo orders to insert (max is the demo set size)")
	withRoute := fs.Bool("with-route", false, "also insert a pending route with a solved result for the seeded orders")
	date := fs.String("date", time.Now().Format("2006-01-02"), "delivery date for the seeded orders (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	if err := bootstrap.RunMigrations(ctx.Ctx, db, ctx.Logger); err != nil {
		return err
	}

	orderRepo := data.NewOrderRepo(db, data.RepoConfig{Logger: ctx.Logger})

	available := demoOrders()
	n := *count
	if n <= 0 || n > len(available) {
		n = len(available)
	}

	created := make([]*model.Order, 0, n)
	for _, s := range available[:n] {
		order, err := orderRepo.Create(ctx.Ctx, &model.CreateOrderRequest{
			CustomerName:        s.name,
			CustomerPhone:       s.phone,
			Address:             s.address,
			Lat:                 s.lat,
			Lon:                 s.lon,
			Weight:              s.weight,
			DeliveryDate:        *date,
			TimeWindow:          s.window,
			SpecialInstructions: s.notes,
		})
		if err != nil {
			return fmt.Errorf("seed order %q: %w", s.name, err)
		}
		created = append(created, order)
		ctx.Logger.InfoContext(ctx.Ctx, "order seeded", "order_id", order.ID, "customer", order.CustomerName)
	}

	if !*withRoute {
		return nil
	}
	return seedSolvedRoute(ctx, db, created)
}

// seedSolvedRoute inserts a pending route built from the seeded orders and a
// terminal 'ok' result, so that /api/result has something to answer before a
// real compute run exists.
func seedSolvedRoute(ctx *commandContext, db *sql.DB, orders []*model.Order) error {
	routeRepo := data.NewRouteRepo(db, ctx.Logger)

	payload := model.OptimizationPayload{
		Depot:    model.Depot{Lat: -33.4372, Lon: -70.6506, VentanaInicio: "08:00", VentanaFin: "20:00"},
		Vehicles: []model.Vehicle{{ID: "VEH-001", CapacityWeight: 100}},
	}
	stops := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		payload.Orders = append(payload.Orders, model.PayloadOrder{
			ID:   o.ID,
			Lat:  o.Lat,
			Lon:  o.Lon,
			Peso: o.Weight,
		})
		stops = append(stops, map[string]any{"id_pedido": o.ID, "lat": o.Lat, "lon": o.Lon})
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("seed payload: %w", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode seed payload: %w", err)
	}

	pending, err := routeRepo.CreatePending(ctx.Ctx, raw)
	if err != nil {
		return fmt.Errorf("seed pending route: %w", err)
	}

	result, err := json.Marshal(map[string]any{
		"vehicles": []map[string]any{{"id": "VEH-001", "stops": stops}},
	})
	if err != nil {
		return fmt.Errorf("encode seed result: %w", err)
	}

	if err := routeRepo.InsertResult(ctx.Ctx, core.InsertRouteResultParams{
		PendingRouteID: pending.ID,
		Status:         model.ResultStatusOK,
		Result:         result,
	}); err != nil {
		return fmt.Errorf("seed route result: %w", err)
	}

	ctx.Logger.InfoContext(ctx.Ctx, "solved route seeded", "pending_route_id", pending.ID, "stops", len(orders))
	return nil
}

func connectDB(ctx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: ctx.Config.Postgres,
		Logger:   ctx.Logger,
	})
}

func closeDB(ctx *commandContext, db *sql.DB) {
	if err := db.Close(); err != nil {
		ctx.Logger.ErrorContext(ctx.Ctx, "close database failed", "error", err)
	}
}
