package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"mavinci/internal/app"
	"mavinci/internal/config"
	"mavinci/internal/database"
	"mavinci/internal/domain/contact"
	"mavinci/internal/domain/employee"
	"mavinci/internal/domain/equipment"
	"mavinci/internal/domain/event"
	"mavinci/internal/domain/offer"
	"mavinci/internal/domain/task"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db, app.Models()...); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// children first so foreign keys hold on postgres
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"notification_recipients", "notifications", "task_attachments", "task_comments", "task_assignees", "tasks",
		"offer_items", "offers", "offer_product_equipment", "offer_products",
		"event_files", "event_folders", "events",
		"contact_organizations", "contacts", "organizations",
		"equipment_units", "equipment_items", "equipment_categories",
		"employees",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Printf("clean %s: %v", table, err)
		}
	}

	// ================== EMPLOYEES ==================
	log.Println("Creating employees...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := employee.Employee{
		Email:        "admin@mavinci.pl",
		PasswordHash: string(adminHash),
		Name:         "Anna",
		Surname:      "Kowalska",
		Role:         employee.RoleAdmin,
		Preferences:  datatypes.NewJSONType(employee.DefaultPreferences()),
		IsActive:     true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@mavinci.pl / admin123")

	staff := []struct {
		email, name, surname string
		perms                []string
	}{
		{"piotr@mavinci.pl", "Piotr", "Nowak", []string{"offers", "events", "clients"}},
		{"marta@mavinci.pl", "Marta", "Wiśniewska", []string{"tasks", "events", "equipment"}},
		{"tomasz@mavinci.pl", "Tomasz", "Zieliński", []string{"tasks", "equipment"}},
	}
	employees := make([]employee.Employee, 0, len(staff))
	for i, s := range staff {
		hash, _ := bcrypt.GenerateFromPassword([]byte("employee123"), bcrypt.DefaultCost)
		e := employee.Employee{
			Email:        s.email,
			PasswordHash: string(hash),
			Name:         s.name,
			Surname:      s.surname,
			Phone:        fmt.Sprintf("+48 600 100 %03d", i+1),
			Role:         employee.RoleEmployee,
			Permissions:  datatypes.NewJSONSlice(s.perms),
			Preferences:  datatypes.NewJSONType(employee.DefaultPreferences()),
			IsActive:     true,
		}
		db.Create(&e)
		employees = append(employees, e)
	}

	// ================== CLIENTS ==================
	log.Println("Creating clients...")
	orgs := []contact.Organization{
		{Name: "Hotel Bristol", TaxID: "5250001090", City: "Warszawa", Email: "eventy@bristol.pl"},
		{Name: "Agencja Kreatywna Fala", TaxID: "6762467890", City: "Kraków"},
		{Name: "Politechnika Gdańska", City: "Gdańsk"},
	}
	for i := range orgs {
		db.Create(&orgs[i])
	}
	people := []contact.Contact{
		{ContactType: contact.TypeContact, FirstName: "Jan", LastName: "Malinowski", Email: "jan@bristol.pl", Position: "Event manager"},
		{ContactType: contact.TypeContact, FirstName: "Ewa", LastName: "Dąbrowska", Email: "ewa@fala.pl"},
		{ContactType: contact.TypeIndividual, FirstName: "Łukasz", LastName: "Żak", Phone: "+48 501 222 333"},
	}
	for i := range people {
		db.Create(&people[i])
	}
	db.Create(&contact.ContactOrganization{ContactID: people[0].ID, OrganizationID: orgs[0].ID, IsCurrent: true, Position: "Event manager"})
	db.Create(&contact.ContactOrganization{ContactID: people[1].ID, OrganizationID: orgs[1].ID, IsCurrent: true})
	db.Create(&contact.ContactOrganization{ContactID: people[1].ID, OrganizationID: orgs[0].ID, IsCurrent: false})

	// ================== EVENTS ==================
	log.Println("Creating events...")
	start := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	events := []event.Event{
		{Name: "Gala jubileuszowa", OrganizationID: &orgs[0].ID, EventDate: start, Location: "Warszawa", Status: event.StatusOfferAccepted},
		{Name: "Konferencja Fala 2026", OrganizationID: &orgs[1].ID, ContactID: &people[1].ID, EventDate: start.AddDate(0, 0, 14), Location: "Kraków", Status: event.StatusOfferSent},
		{Name: "Wesele Żak", ContactID: &people[2].ID, EventDate: start.AddDate(0, 2, 0), Location: "Sopot", Status: event.StatusInPreparation},
	}
	for i := range events {
		events[i].CreatedBy = admin.ID
		db.Create(&events[i])
	}

	// ================== EQUIPMENT ==================
	log.Println("Creating equipment...")
	sound := equipment.Category{Name: "Nagłośnienie"}
	db.Create(&sound)
	speakers := equipment.Category{Name: "Kolumny", ParentID: &sound.ID}
	db.Create(&speakers)
	light := equipment.Category{Name: "Oświetlenie"}
	db.Create(&light)

	items := []equipment.Item{
		{Name: "Kolumna aktywna", Brand: "RCF", Model: "ART 945-A", CategoryID: &speakers.ID},
		{Name: "Mikser cyfrowy", Brand: "Behringer", Model: "X32", CategoryID: &sound.ID},
		{Name: "Głowa ruchoma", Brand: "Chauvet", Model: "Rogue R2", CategoryID: &light.ID},
	}
	for i := range items {
		db.Create(&items[i])
		for j := 1; j <= 4; j++ {
			status := equipment.UnitAvailable
			if j == 4 {
				status = equipment.UnitInService
			}
			db.Create(&equipment.Unit{
				ItemID:       items[i].ID,
				SerialNumber: fmt.Sprintf("MV-%03d-%02d", items[i].ID, j),
				Status:       status,
			})
		}
	}

	// ================== OFFERS ==================
	log.Println("Creating offers...")
	offers := offer.NewService(offer.NewRepository(db), nil, nil)
	ctx := context.Background()

	product, err := offers.CreateProduct(ctx, offer.CreateProductRequest{
		Name:           "Nagłośnienie konferencyjne",
		Unit:           "kpl",
		BasePrice:      decimal.NewFromInt(2500),
		TransportPrice: decimal.NewFromInt(300),
		LogisticsPrice: decimal.NewFromInt(200),
		BaseCost:       decimal.NewFromInt(1200),
		TransportCost:  decimal.NewFromInt(150),
		LogisticsCost:  decimal.NewFromInt(100),
		Equipment: []offer.ProductEquipment{
			{EquipmentItemID: items[0].ID, Quantity: 2},
			{EquipmentItemID: items[1].ID, Quantity: 1},
		},
	})
	if err != nil {
		log.Fatal("create product failed:", err)
	}

	for i, ev := range events[:2] {
		details, err := offers.Submit(ctx, admin.ID, offer.SubmitRequest{
			EventID: &ev.ID,
			Title:   "Oferta: " + ev.Name,
			Items: []offer.LineInput{
				{
					ProductID: &product.ID,
					Name:      product.Name,
					Quantity:  decimal.NewFromInt(1),
					UnitPrice: decimal.NewFromInt(3000),
				},
				{
					Name:            "Obsługa techniczna",
					Quantity:        decimal.NewFromInt(int64(8 + 4*i)),
					UnitPrice:       decimal.NewFromInt(120),
					DiscountPercent: decimal.NewFromInt(10),
				},
			},
		})
		if err != nil {
			log.Fatal("submit offer failed:", err)
		}
		if ev.Status == event.StatusOfferAccepted {
			if _, err := offers.SetStatus(ctx, details.ID, offer.StatusAccepted); err != nil {
				log.Fatal("accept offer failed:", err)
			}
		}
		log.Printf("Offer %s: net=%s gross=%s", details.OfferNumber, details.TotalNet, details.TotalGross)
	}

	// ================== TASKS ==================
	log.Println("Creating tasks...")
	tasks := []struct {
		title     string
		column    task.Column
		eventID   *int64
		assignees []employee.Employee
	}{
		{"Potwierdzić godziny montażu", task.ColumnTodo, &events[0].ID, employees[:1]},
		{"Spakować nagłośnienie", task.ColumnInProgress, &events[0].ID, employees[1:3]},
		{"Przygotować rider techniczny", task.ColumnReview, &events[1].ID, employees[1:2]},
		{"Serwis kolumn RCF", task.ColumnTodo, nil, employees[2:]},
	}
	for _, t := range tasks {
		row := task.Task{
			EventID:     t.eventID,
			Title:       t.title,
			BoardColumn: t.column,
			Priority:    task.PriorityMedium,
			CreatedBy:   admin.ID,
		}
		for _, a := range t.assignees {
			row.AssigneeRows = append(row.AssigneeRows, task.Assignee{EmployeeID: a.ID})
		}
		db.Create(&row)
	}

	log.Println("Seed completed")
}
