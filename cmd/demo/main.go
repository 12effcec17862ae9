// Command demo bootstraps a small hotel in memory and walks it through a typical day.
package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/adapters/observability"
	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
	"hotel_ops/internal/pricing"
	"hotel_ops/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	rates := cfg.RateTable()
	hotel := app.NewHotel(app.Options{
		Name:    cfg.HotelName,
		Address: cfg.HotelAddress,
		Rates:   &rates,
		Season:  cfg.Season(),
		Logger:  &log.Logger,
	})

	if err := setup(ctx, hotel); err != nil {
		log.Fatal().Err(err).Msg("setup failed")
	}
	logSummary(hotel.Summary())

	service(ctx, hotel, "G001", domain.ServiceCheckIn, domain.ServiceParams{RoomID: "101", Nights: 3})
	service(ctx, hotel, "G001", domain.ServiceClean, domain.ServiceParams{RoomID: "101", Tasks: domain.CleaningTasks{
		DeepClean: true, ChangeSheets: true, VacuumCarpet: true, CleanBathroom: true, RestockSupplies: true,
	}})
	service(ctx, hotel, "G001", domain.ServiceServeMeal, domain.ServiceParams{Dish: "Kung Pao Chicken", Quantity: 2})
	service(ctx, hotel, "G001", domain.ServiceCheckOut, domain.ServiceParams{})

	if g, err := hotel.Guest("G002"); err == nil {
		log.Info().Str("guest_id", g.ID).Str("name", g.Name).Str("contact", g.Contact).Str("phase", string(g.Phase())).Msg("guest details")
	}

	for _, tier := range []string{pricing.TierJunior, pricing.TierSenior, pricing.TierManager} {
		log.Info().Str("tier", tier).Float64("salary", hotel.Compensation(pricing.StandardBaseSalary, tier)).Msg("staff compensation")
	}
	policy := pricing.New(rates)
	if peak, err := policy.RoomCost(2000, 3, true); err == nil {
		log.Info().Float64("price", peak).Int("nights", 3).Msg("peak season price")
	}
	log.Info().Float64("price", policy.LoyaltyDiscount(5000, true)).Msg("loyalty discount on 5000")

	if info, ok := hotel.FirstGuestRoomInfo(); ok {
		log.Info().Str("room_id", info.RoomID).Str("category", info.Category).Float64("rate", info.NightlyRate).Msg("first guest room")
	} else {
		log.Info().Msg("first guest is not checked in")
	}

	// Room 101 is dirty after check-out until housekeeping cleans it again.
	service(ctx, hotel, "G002", domain.ServiceCheckIn, domain.ServiceParams{RoomID: "101", Nights: 3})
	service(ctx, hotel, "G002", domain.ServiceClean, domain.ServiceParams{RoomID: "101"})
	service(ctx, hotel, "G002", domain.ServiceCheckIn, domain.ServiceParams{RoomID: "101", Nights: 3})

	logSummary(hotel.Summary())
}

func setup(ctx context.Context, h *app.Hotel) error {
	for _, r := range []domain.Room{
		{ID: "101", Category: "Standard Double Room", NightlyRate: 2000},
		{ID: "201", Category: "Deluxe Suite", NightlyRate: 5000},
		{ID: "301", Category: "Presidential Suite", NightlyRate: 10000},
	} {
		if err := h.AddRoom(ctx, r); err != nil {
			return err
		}
	}

	staff := []struct {
		role   domain.Role
		member domain.StaffMember
	}{
		{domain.RoleFrontDesk, domain.StaffMember{
			Person:  domain.Person{Name: "John Zhang", Age: 28, Contact: "0912-345-678"},
			Profile: &domain.FrontDesk{Shift: "Morning Shift", Duties: []string{"Check-in", "Check-out", "Customer Service"}},
		}},
		{domain.RoleHousekeeping, domain.StaffMember{
			Person:  domain.Person{Name: "Lisa Lee", Age: 35, Contact: "0923-456-789"},
			Profile: &domain.Housekeeping{Floor: "1st Floor", Available: true},
		}},
		{domain.RoleCulinary, domain.StaffMember{
			Person:  domain.Person{Name: "Master Wang", Age: 45, Contact: "0934-567-890"},
			Profile: &domain.Culinary{Specialty: "Chinese Cuisine", YearsOfExperience: 20},
		}},
	}
	for _, s := range staff {
		if _, err := h.AddStaff(ctx, s.role, s.member); err != nil {
			return err
		}
	}
	if err := h.AddMenuItem("Kung Pao Chicken"); err != nil {
		return err
	}

	for _, g := range []domain.Guest{
		{ID: "G001", Person: domain.Person{Name: "Mr. Chen", Age: 30, Contact: "chen@example.com"}},
		{ID: "G002", Person: domain.Person{Name: "Ms. Lin", Age: 28, Contact: "lin@example.com"}},
	} {
		if err := h.AddGuest(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func service(ctx context.Context, h *app.Hotel, guestID string, kind domain.ServiceKind, p domain.ServiceParams) {
	res := h.RequestService(ctx, guestID, kind, p)
	ev := log.Info()
	if !res.OK {
		ev = log.Warn().Str("error_kind", res.Failure.Kind).Str("reason", res.Failure.Message)
	}
	ev = ev.Str("guest_id", guestID).Str("kind", string(kind)).Str("staff", res.StaffName)
	if res.Cost != nil {
		ev = ev.Float64("cost", *res.Cost)
	}
	if res.Meal != nil {
		ev = ev.Str("dish", res.Meal.Dish).Int("quantity", res.Meal.Quantity)
	}
	ev.Bool("ok", res.OK).Msg("service")
}

func logSummary(s domain.Summary) {
	staff := zerolog.Dict()
	for role, n := range s.Staff {
		staff = staff.Int(string(role), n)
	}
	log.Info().
		Str("hotel", s.HotelName).
		Str("address", s.Address).
		Int("rooms", s.Rooms).
		Int("available", s.Available).
		Int("occupied", s.Occupied).
		Int("dirty", s.Dirty).
		Int("guests", s.Guests).
		Int("in_house", s.InHouse).
		Dict("staff", staff).
		Int("meals_served", s.MealsServed).
		Int("rooms_cleaned", s.RoomsCleaned).
		Msg("hotel summary")
}
