package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"carrental/cli/internal/sqlexec"

	"github.com/jackc/pgx/v5/pgtype"
)

type statement struct {
	database string
	sql      string
	args     []any
}

type fakeDB struct {
	tableCreated bool
	cars         []Car
	nextID       int64
}

// fakeStore is an in-memory stand-in for the server. It understands the
// procedure calls and catalog query the gateway issues.
type fakeStore struct {
	mu         sync.Mutex
	databases  map[string]*fakeDB
	connects   []string
	open       int
	statements []statement
	failOn     string
}

func newFakeStore(databases ...string) *fakeStore {
	s := &fakeStore{databases: map[string]*fakeDB{}}
	for _, name := range databases {
		s.databases[name] = &fakeDB{}
	}
	return s
}

func (s *fakeStore) Connect(_ context.Context, database string) (sqlexec.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connects = append(s.connects, database)
	if _, ok := s.databases[database]; !ok {
		return nil, fmt.Errorf("FATAL: database %q does not exist", database)
	}
	s.open++
	return &fakeConn{store: s, database: database}, nil
}

func (s *fakeStore) seed(database string, cars ...Car) {
	db := s.databases[database]
	db.tableCreated = true
	for _, c := range cars {
		db.nextID++
		c.ID = db.nextID
		db.cars = append(db.cars, c)
	}
}

type fakeConn struct {
	store    *fakeStore
	database string
	closed   bool
}

func (c *fakeConn) db() *fakeDB { return c.store.databases[c.database] }

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statements = append(s.statements, statement{database: c.database, sql: sql, args: args})
	if s.failOn != "" && strings.Contains(sql, s.failOn) {
		return 0, fmt.Errorf("ERROR: syntax error at or near %q", s.failOn)
	}

	call := func(name string) bool { return strings.HasPrefix(sql, "CALL public."+name+"(") }
	switch {
	case call("sp_create_database"):
		if len(args) == 1 {
			s.databases[args[0].(string)] = &fakeDB{}
		}
		return 0, nil
	case call("sp_drop_database"):
		if len(args) == 1 {
			delete(s.databases, args[0].(string))
		}
		return 0, nil
	case call("sp_create_table"):
		c.db().tableCreated = true
		return 0, nil
	}

	if !strings.HasPrefix(sql, "CALL ") {
		return 0, nil
	}
	db := c.db()
	if !db.tableCreated {
		return 0, fmt.Errorf(`ERROR: relation "cars" does not exist`)
	}
	if len(args) == 0 && !call("sp_clear_table") {
		return 0, nil
	}

	switch {
	case call("sp_clear_table"):
		n := int64(len(db.cars))
		db.cars, db.nextID = nil, 0
		return n, nil
	case call("sp_insert_car"):
		db.nextID++
		db.cars = append(db.cars, Car{
			ID:    db.nextID,
			Brand: args[0].(string),
			Model: args[1].(string),
			Year:  args[2].(int),
			Price: fromNumeric(args[3].(pgtype.Numeric)),
		})
		return 1, nil
	case call("sp_update_car"):
		id := args[0].(int64)
		for i := range db.cars {
			if db.cars[i].ID == id {
				db.cars[i] = Car{
					ID:    id,
					Brand: args[1].(string),
					Model: args[2].(string),
					Year:  args[3].(int),
					Price: fromNumeric(args[4].(pgtype.Numeric)),
				}
				return 1, nil
			}
		}
		return 0, nil
	case call("sp_delete_car_by_model"):
		model := args[0].(string)
		kept := db.cars[:0]
		for _, car := range db.cars {
			if car.Model != model {
				kept = append(kept, car)
			}
		}
		n := int64(len(db.cars) - len(kept))
		db.cars = kept
		return n, nil
	}
	return 0, fmt.Errorf("unexpected statement %q", sql)
}

func (c *fakeConn) Query(_ context.Context, sql string, args ...any) (sqlexec.Rows, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statements = append(s.statements, statement{database: c.database, sql: sql, args: args})
	if s.failOn != "" && strings.Contains(sql, s.failOn) {
		return nil, fmt.Errorf("ERROR: function %s does not exist", s.failOn)
	}

	switch {
	case strings.Contains(sql, "pg_database"):
		var exists bool
		if len(args) == 1 {
			_, exists = s.databases[args[0].(string)]
		} else {
			for name := range s.databases {
				if strings.Contains(sql, sqlexec.QuoteLiteral(name)) {
					exists = true
				}
			}
		}
		return &fakeRows{rows: [][]any{{exists}}}, nil
	case strings.Contains(sql, "sp_view_cars"), strings.Contains(sql, "sp_search_car"):
		db := c.db()
		if !db.tableCreated {
			return nil, fmt.Errorf(`ERROR: relation "cars" does not exist`)
		}
		out := &fakeRows{}
		for _, car := range db.cars {
			if strings.Contains(sql, "sp_search_car") && len(args) == 1 && car.Model != args[0].(string) {
				continue
			}
			out.rows = append(out.rows, []any{car.ID, car.Brand, car.Model, car.Year, toNumeric(car.Price)})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected query %q", sql)
}

func (c *fakeConn) Close(context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.store.open--
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *bool:
			*p = row[i].(bool)
		case *int64:
			*p = row[i].(int64)
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		case *pgtype.Numeric:
			*p = row[i].(pgtype.Numeric)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}
