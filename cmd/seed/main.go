package main

import (
	"log"
	"os"

	"github.com/Fusion-Mind-co/worklog-system/internal/model"
	"github.com/Fusion-Mind-co/worklog-system/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedUnits(db)
	seedUsers(db)

	log.Println("Seeding completed!")
}

func seedUnits(db *gorm.DB) {
	log.Println("Seeding units and work types...")

	workTypes := []string{"Assembly", "Inspection", "Rework", "Packaging", "Testing"}
	typeIds := map[string]model.WorkType{}
	for _, name := range workTypes {
		var existing model.WorkType
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			typeIds[name] = existing
			continue
		}
		wt := model.WorkType{Name: name}
		if err := db.Create(&wt).Error; err != nil {
			log.Printf("Error creating work type '%s': %v", name, err)
			continue
		}
		typeIds[name] = wt
	}

	units := map[string][]string{
		"Unit A": {"Assembly", "Inspection", "Testing"},
		"Unit B": {"Assembly", "Rework", "Packaging"},
		"Unit C": {"Inspection", "Packaging"},
	}
	for unitName, types := range units {
		var existing model.UnitName
		if err := db.Where("name = ?", unitName).First(&existing).Error; err == nil {
			log.Printf("Unit '%s' already exists, skipping...", unitName)
			continue
		}
		unit := model.UnitName{Name: unitName}
		if err := db.Create(&unit).Error; err != nil {
			log.Printf("Error creating unit '%s': %v", unitName, err)
			continue
		}
		for _, typeName := range types {
			wt, ok := typeIds[typeName]
			if !ok {
				continue
			}
			link := model.UnitWorkType{UnitNameId: unit.Id, WorkTypeId: wt.Id}
			if err := db.Create(&link).Error; err != nil {
				log.Printf("Error linking '%s' to '%s': %v", unitName, typeName, err)
			}
		}
		log.Printf("Created unit: %s", unitName)
	}
}

func seedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	type seedUser struct {
		EmployeeId string
		Name       string
		Department string
		Position   string
		Password   string
		RoleLevel  int
	}

	users := []seedUser{
		{EmployeeId: "admin001", Name: "System Admin", Department: "Administration", Position: "Manager", Password: "admin12345", RoleLevel: 2},
		{EmployeeId: "emp001", Name: "Taro Yamada", Department: "Production", Position: "Operator", Password: "password123", RoleLevel: 1},
		{EmployeeId: "emp002", Name: "Hanako Sato", Department: "Production", Position: "Operator", Password: "password123", RoleLevel: 1},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("employee_id = ?", u.EmployeeId).First(&existing).Error; err == nil {
			log.Printf("User '%s' already exists, skipping...", u.EmployeeId)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for '%s': %v", u.EmployeeId, err)
			continue
		}
		user := model.User{
			EmployeeId:     u.EmployeeId,
			Name:           u.Name,
			DepartmentName: u.Department,
			Position:       u.Position,
			PasswordHash:   string(hash),
			RoleLevel:      u.RoleLevel,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating user '%s': %v", u.EmployeeId, err)
		} else {
			log.Printf("Created user: %s (%s)", u.Name, u.EmployeeId)
		}
	}
}
