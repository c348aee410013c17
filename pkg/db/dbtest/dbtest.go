// Package dbtest opens sqlite databases migrated with the application models
// for repository and service tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/stationdesk-backend/pkg/db/models"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// AllModels lists every persisted model in dependency order.
func AllModels() []any {
	return []any{
		&models.User{},
		&models.GasStation{},
		&models.Employee{},
		&models.EmployeeStation{},
		&models.Shift{},
		&models.ShiftReport{},
		&models.Transaction{},
		&models.Expense{},
		&models.FuelDelivery{},
		&models.FuelDeliveryItem{},
		&models.FuelInventory{},
	}
}

// Open returns a private in-memory database for the calling test. The
// connection pool is pinned to one connection so concurrent goroutines
// serialize on sqlite instead of failing with SQLITE_BUSY.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(AllModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func MustCreateStation(t *testing.T, conn *gorm.DB, name string) *models.GasStation {
	t.Helper()
	station := &models.GasStation{
		Name:    name,
		Address: "100 Main St",
		City:    "Austin",
		State:   "TX",
		ZipCode: "78701",
	}
	if err := conn.Create(station).Error; err != nil {
		t.Fatalf("create station: %v", err)
	}
	return station
}

func MustCreateEmployee(t *testing.T, conn *gorm.DB, stationIDs ...uuid.UUID) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		FirstName: "Sam",
		LastName:  "Cashier",
		Role:      enums.EmployeeRoleCashier,
		IsActive:  true,
	}
	if err := conn.Create(employee).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	for _, id := range stationIDs {
		link := &models.EmployeeStation{EmployeeID: employee.ID, GasStationID: id}
		if err := conn.Create(link).Error; err != nil {
			t.Fatalf("link employee: %v", err)
		}
	}
	return employee
}

func MustCreateShift(t *testing.T, conn *gorm.DB, stationID, employeeID uuid.UUID, start time.Time) *models.Shift {
	t.Helper()
	shift := &models.Shift{
		GasStationID: stationID,
		EmployeeID:   employeeID,
		StartTime:    start.UTC(),
		Status:       enums.ShiftStatusOpen,
	}
	if err := conn.Create(shift).Error; err != nil {
		t.Fatalf("create shift: %v", err)
	}
	return shift
}

func MustCreateUser(t *testing.T, conn *gorm.DB, email string, role enums.UserRole, passwordHash *string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		LoginMethod:  enums.LoginMethodEmailPassword,
		Role:         role,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
