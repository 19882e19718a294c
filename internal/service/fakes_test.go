package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"
	"time"

	"jobly/internal/models"
	"jobly/internal/storage/redis"
)

// memCache stores JSON in a map and matches patterns the way Redis globs do
// for the keys used here.
type memCache struct {
	data    map[string][]byte
	failGet bool
	failSet bool
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) error {
	if c.failGet {
		return errors.New("connection refused")
	}
	data, ok := c.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.failSet {
		return errors.New("connection refused")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, pattern string) (int, error) {
	n := 0
	for key := range c.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.data, key)
			n++
		}
	}
	return n, nil
}

func (c *memCache) has(key string) bool {
	_, ok := c.data[key]
	return ok
}

type fakeCompanyStore struct {
	companies map[string]models.Company
	calls     map[string]int
	err       error

	// jobs, when set, supplies the embedded jobs of a company detail.
	jobs *fakeJobStore
}

func newFakeCompanyStore(companies ...models.Company) *fakeCompanyStore {
	s := &fakeCompanyStore{companies: map[string]models.Company{}, calls: map[string]int{}}
	for _, c := range companies {
		s.companies[c.Handle] = c
	}
	return s
}

func (s *fakeCompanyStore) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	s.calls["ListCompanies"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries(""), nil
}

func (s *fakeCompanyStore) ListCompaniesFiltered(_ context.Context, f models.CompanyFilter) ([]models.CompanySummary, error) {
	s.calls["ListCompaniesFiltered"]++
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries(f.Search.Value()), nil
}

func (s *fakeCompanyStore) summaries(search string) []models.CompanySummary {
	out := []models.CompanySummary{}
	for _, c := range s.companies {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, models.CompanySummary{Handle: c.Handle, Name: c.Name})
		}
	}
	return out
}

func (s *fakeCompanyStore) GetCompany(_ context.Context, handle string) (*models.CompanyDetail, error) {
	s.calls["GetCompany"]++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.companies[handle]
	if !ok {
		return nil, nil
	}
	detail := &models.CompanyDetail{Company: c, Jobs: []models.Job{}}
	if s.jobs != nil {
		for _, j := range s.jobs.jobs {
			if j.CompanyHandle == handle {
				detail.Jobs = append(detail.Jobs, j)
			}
		}
	}
	return detail, nil
}

func (s *fakeCompanyStore) CreateCompany(_ context.Context, c models.NewCompany) (*models.Company, error) {
	s.calls["CreateCompany"]++
	if s.err != nil {
		return nil, s.err
	}
	company := models.Company{Handle: c.Handle, Name: c.Name, NumEmployees: c.NumEmployees}
	s.companies[c.Handle] = company
	return &company, nil
}

func (s *fakeCompanyStore) UpdateCompany(_ context.Context, handle string, upd models.CompanyUpdate) (*models.Company, error) {
	s.calls["UpdateCompany"]++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.companies[handle]
	if !ok {
		return nil, nil
	}
	if name, ok := upd.Name.Get(); ok {
		c.Name = name
	}
	s.companies[handle] = c
	return &c, nil
}

func (s *fakeCompanyStore) DeleteCompany(_ context.Context, handle string) (*models.CompanySummary, error) {
	s.calls["DeleteCompany"]++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.companies[handle]
	if !ok {
		return nil, nil
	}
	delete(s.companies, handle)
	return &models.CompanySummary{Handle: c.Handle, Name: c.Name}, nil
}

type fakeJobStore struct {
	jobs  map[int64]models.Job
	next  int64
	calls map[string]int
}

func newFakeJobStore(jobs ...models.Job) *fakeJobStore {
	s := &fakeJobStore{jobs: map[int64]models.Job{}, calls: map[string]int{}}
	for _, j := range jobs {
		s.jobs[j.ID] = j
		if j.ID > s.next {
			s.next = j.ID
		}
	}
	return s
}

func (s *fakeJobStore) list() []models.JobSummary {
	out := []models.JobSummary{}
	for _, j := range s.jobs {
		out = append(out, models.JobSummary{ID: j.ID, Title: j.Title, CompanyHandle: j.CompanyHandle})
	}
	return out
}

func (s *fakeJobStore) ListJobs(context.Context) ([]models.JobSummary, error) {
	s.calls["ListJobs"]++
	return s.list(), nil
}

func (s *fakeJobStore) ListJobsFiltered(context.Context, models.JobFilter) ([]models.JobSummary, error) {
	s.calls["ListJobsFiltered"]++
	return s.list(), nil
}

func (s *fakeJobStore) GetJob(_ context.Context, id int64) (*models.JobDetail, error) {
	s.calls["GetJob"]++
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &models.JobDetail{Job: j}, nil
}

func (s *fakeJobStore) CreateJob(_ context.Context, nj models.NewJob) (*models.Job, error) {
	s.calls["CreateJob"]++
	s.next++
	j := models.Job{ID: s.next, Title: nj.Title, CompanyHandle: nj.CompanyHandle}
	s.jobs[j.ID] = j
	return &j, nil
}

func (s *fakeJobStore) UpdateJob(_ context.Context, id int64, upd models.JobUpdate) (*models.Job, error) {
	s.calls["UpdateJob"]++
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	if title, ok := upd.Title.Get(); ok {
		j.Title = title
	}
	if handle, ok := upd.CompanyHandle.Get(); ok {
		j.CompanyHandle = handle
	}
	s.jobs[id] = j
	return &j, nil
}

func (s *fakeJobStore) DeleteJob(_ context.Context, id int64) (*models.JobSummary, error) {
	s.calls["DeleteJob"]++
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	delete(s.jobs, id)
	return &models.JobSummary{ID: j.ID, Title: j.Title, CompanyHandle: j.CompanyHandle}, nil
}

type fakeUserStore struct {
	users map[string]models.User
	last  models.UserUpdate
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]models.User{}}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *fakeUserStore) ListUsers(context.Context) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, u := range s.users {
		out = append(out, models.UserSummary{Username: u.Username})
	}
	return out, nil
}

func (s *fakeUserStore) GetUser(_ context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	u.Password = ""
	u.IsAdmin = false
	return &u, nil
}

func (s *fakeUserStore) GetUserCredentials(_ context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &models.User{Username: u.Username, Password: u.Password, IsAdmin: u.IsAdmin}, nil
}

func (s *fakeUserStore) CreateUser(_ context.Context, nu models.NewUser) (*models.User, error) {
	u := models.User{Username: nu.Username, Password: nu.Password, FirstName: nu.FirstName, Email: nu.Email}
	s.users[u.Username] = u
	out := u
	out.Password = ""
	return &out, nil
}

func (s *fakeUserStore) UpdateUser(_ context.Context, username string, upd models.UserUpdate) (*models.User, error) {
	s.last = upd
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	if p, ok := upd.Password.Get(); ok {
		u.Password = p
	}
	s.users[username] = u
	out := u
	out.Password = ""
	return &out, nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, username string) (*models.UserSummary, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	delete(s.users, username)
	return &models.UserSummary{Username: u.Username}, nil
}

// prefixHasher is a reversible stand-in for bcrypt.
type prefixHasher struct{}

func (prefixHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (prefixHasher) Compare(hash, plaintext string) (bool, error) {
	return hash == "hashed:"+plaintext, nil
}
