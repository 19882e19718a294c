package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"jobly/internal/auth"
	"jobly/internal/config"
	"jobly/internal/logger"
	"jobly/internal/models"
	"jobly/internal/query"
	"jobly/internal/service"
	"jobly/internal/storage/postgres"
	"jobly/internal/storage/redis"

	"go.uber.org/zap"
)

type app struct {
	companies *service.Companies
	jobs      *service.Jobs
	users     *service.Users
	log       *zap.Logger
}

func main() {
	args := os.Args[1:]
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	// Without Redis the bot may serve stale entries until they expire.
	var cache service.Cache
	if c, err := redis.New(redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}, log); err != nil {
		log.Warn("redis unavailable, cached entries will not be invalidated", zap.Error(err))
	} else {
		defer c.Close()
		cache = c
	}

	a := &app{
		companies: service.NewCompanies(store, cache, cfg.CacheTTL, log),
		jobs:      service.NewJobs(store, cache, cfg.CacheTTL, log),
		users:     service.NewUsers(store, auth.NewBcryptHasher(cfg.BcryptCost), log),
		log:       log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	if err := a.run(ctx, args[0], args[1], args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, resource, command string, args []string) error {
	switch resource + " " + command {
	case "companies add":
		if err := need(args, 2, "companies add <handle> <name> [num_employees]"); err != nil {
			return err
		}
		c := models.NewCompany{Handle: args[0], Name: args[1]}
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("num_employees: %w", err)
			}
			c.NumEmployees = &n
		}
		company, err := a.companies.Create(ctx, c)
		if err != nil {
			return err
		}
		fmt.Printf("created company %s (%s)\n", company.Handle, company.Name)

	case "companies rename":
		if err := need(args, 2, "companies rename <handle> <name>"); err != nil {
			return err
		}
		company, err := a.companies.Update(ctx, args[0], models.CompanyUpdate{Name: query.Some(args[1])})
		if err != nil {
			return err
		}
		if company == nil {
			return fmt.Errorf("no company %q", args[0])
		}
		fmt.Printf("renamed %s to %s\n", company.Handle, company.Name)

	case "companies rm":
		if err := need(args, 1, "companies rm <handle>"); err != nil {
			return err
		}
		deleted, err := a.companies.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		if deleted == nil {
			return fmt.Errorf("no company %q", args[0])
		}
		fmt.Printf("deleted company %s\n", deleted.Name)

	case "jobs add":
		if err := need(args, 2, "jobs add <company_handle> <title> [salary] [equity]"); err != nil {
			return err
		}
		j := models.NewJob{CompanyHandle: args[0], Title: args[1]}
		var err error
		if len(args) > 2 {
			if j.Salary, err = parseFloat("salary", args[2]); err != nil {
				return err
			}
		}
		if len(args) > 3 {
			if j.Equity, err = parseFloat("equity", args[3]); err != nil {
				return err
			}
		}
		job, err := a.jobs.Create(ctx, j)
		if err != nil {
			return err
		}
		fmt.Printf("created job %d (%s)\n", job.ID, job.Title)

	case "jobs rm":
		if err := need(args, 1, "jobs rm <id>"); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		deleted, err := a.jobs.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == nil {
			return fmt.Errorf("no job %d", id)
		}
		fmt.Printf("deleted job %s\n", deleted.Title)

	case "users list":
		users, err := a.users.List(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s\t%s %s\t%s\n", u.Username, u.FirstName, u.LastName, u.Email)
		}

	case "users add":
		if err := need(args, 4, "users add <username> <email> <first_name> <last_name> (password on stdin)"); err != nil {
			return err
		}
		password, err := readPassword()
		if err != nil {
			return err
		}
		user, err := a.users.Register(ctx, models.NewUser{
			Username:  args[0],
			Password:  password,
			Email:     args[1],
			FirstName: args[2],
			LastName:  args[3],
		})
		if errors.Is(err, postgres.ErrDuplicateKey) {
			return fmt.Errorf("username or email already taken")
		}
		if err != nil {
			return err
		}
		fmt.Printf("registered %s\n", user.Username)

	case "users passwd":
		if err := need(args, 1, "users passwd <username> (password on stdin)"); err != nil {
			return err
		}
		password, err := readPassword()
		if err != nil {
			return err
		}
		user, err := a.users.Update(ctx, args[0], models.UserUpdate{Password: query.Some(password)})
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no user %q", args[0])
		}
		fmt.Printf("password changed for %s\n", user.Username)

	case "users verify":
		if err := need(args, 1, "users verify <username> (password on stdin)"); err != nil {
			return err
		}
		password, err := readPassword()
		if err != nil {
			return err
		}
		user, err := a.users.Authenticate(ctx, args[0], password)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("invalid username/password")
		}
		fmt.Printf("ok: %s (admin: %v)\n", user.Username, user.IsAdmin)

	case "users rm":
		if err := need(args, 1, "users rm <username>"); err != nil {
			return err
		}
		deleted, err := a.users.Delete(ctx, args[0])
		if err != nil {
			return err
		}
		if deleted == nil {
			return fmt.Errorf("no user %q", args[0])
		}
		fmt.Printf("deleted user %s\n", deleted.Username)

	default:
		usage()
		return fmt.Errorf("unknown command %q", resource+" "+command)
	}

	return nil
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: jobly-admin %s", usage)
	}
	return nil
}

func parseFloat(name, s string) (*float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s: %q is not a finite number", name, s)
	}
	return &f, nil
}

// readPassword takes the first line of stdin.
func readPassword() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: jobly-admin <resource> <command> [args]

Companies:
  companies add <handle> <name> [num_employees]
  companies rename <handle> <name>
  companies rm <handle>

Jobs:
  jobs add <company_handle> <title> [salary] [equity]
  jobs rm <id>

Users (passwords are read from stdin):
  users list
  users add <username> <email> <first_name> <last_name>
  users passwd <username>
  users verify <username>
  users rm <username>

Environment:
  POSTGRES_DSN   Required.
  REDIS_ADDR     Cache to invalidate (default: localhost:6379)
  BCRYPT_COST    Password hashing cost (default: 12)`)
}
