package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
)

const (
	seedDays       = 30
	attendanceRate = 0.8
)

type seedEmployee struct {
	name       string
	email      string
	password   string
	code       string
	department string
	role       employee.Role
}

var roster = []seedEmployee{
	{"John Manager", "manager@company.com", "manager123", "MGR001", "Management", employee.RoleManager},
	{"Alice Johnson", "alice@company.com", "employee123", "EMP001", "Engineering", employee.RoleEmployee},
	{"Bob Smith", "bob@company.com", "employee123", "EMP002", "Engineering", employee.RoleEmployee},
	{"Carol Williams", "carol@company.com", "employee123", "EMP003", "Marketing", employee.RoleEmployee},
	{"David Brown", "david@company.com", "employee123", "EMP004", "Sales", employee.RoleEmployee},
	{"Eva Davis", "eva@company.com", "employee123", "EMP005", "HR", employee.RoleEmployee},
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Seed error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(cfg.App)

	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}
	workWeek, err := cfg.App.WorkWeek()
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	// Records are written through the check-in workflow on a settable clock.
	today := clock.StartOfDay(time.Now().In(loc))
	seedClock := clock.NewFixed(today)
	svc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, seedClock, log)

	days, err := workWeek.Days(today.AddDate(0, 0, -(seedDays - 1)), today)
	if err != nil {
		return err
	}

	var created []employee.Employee
	records := 0

	err = postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
		if _, err := postgresql.GetQuerier(txCtx, db).Exec(txCtx, "TRUNCATE attendances, employees"); err != nil {
			return fmt.Errorf("clearing existing data: %w", err)
		}

		for _, s := range roster {
			hash, err := serviceAuth.HashPassword(s.password)
			if err != nil {
				return err
			}
			emp, err := employeeRepo.Create(txCtx, employee.Employee{
				Name:         s.name,
				Email:        s.email,
				PasswordHash: hash,
				EmployeeCode: s.code,
				Department:   s.department,
				Role:         s.role,
			})
			if err != nil {
				return fmt.Errorf("creating %s: %w", s.email, err)
			}
			if emp.Role == employee.RoleEmployee {
				created = append(created, emp)
			}
			log.Info("created employee", slog.String("email", emp.Email), slog.String("role", string(emp.Role)))
		}

		for _, day := range days {
			for _, emp := range created {
				if rand.Float64() > attendanceRate {
					continue
				}

				checkIn := day.Add(time.Duration(8+rand.Intn(3))*time.Hour + time.Duration(rand.Intn(60))*time.Minute)
				checkOut := day.Add(time.Duration(17+rand.Intn(3))*time.Hour + time.Duration(rand.Intn(60))*time.Minute)

				seedClock.Set(checkIn)
				if _, err := svc.CheckIn(txCtx, emp.ID); err != nil {
					return fmt.Errorf("check in %s on %s: %w", emp.EmployeeCode, day.Format(time.DateOnly), err)
				}
				seedClock.Set(checkOut)
				if _, err := svc.CheckOut(txCtx, emp.ID); err != nil {
					return fmt.Errorf("check out %s on %s: %w", emp.EmployeeCode, day.Format(time.DateOnly), err)
				}
				records++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("seed data created",
		slog.Int("employees", len(roster)),
		slog.Int("attendance_records", records),
		slog.Int("working_days", len(days)),
	)
	fmt.Println("Manager login:  manager@company.com / manager123")
	fmt.Println("Employee login: alice@company.com / employee123 (or any employee email)")
	return nil
}
