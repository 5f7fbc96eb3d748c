// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gateway

import (
	"context"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/session"
	"carrental/cli/internal/sqlexec"
)

const (
	callCreateTable = "CALL public.sp_create_table()"
	callClearTable  = "CALL public.sp_clear_table()"
	callInsertCar   = "CALL public.sp_insert_car($1, $2, $3, $4)"
	callUpdateCar   = "CALL public.sp_update_car($1, $2, $3, $4, $5)"
	callDeleteCar   = "CALL public.sp_delete_car_by_model($1)"

	querySearchCar = "SELECT id, brand, model, year, price FROM public.sp_search_car($1)"
	queryViewCars  = "SELECT id, brand, model, year, price FROM public.sp_view_cars()"
)

// CreateTable creates the cars table in the active tenant database. Admin only.
func (g *Gateway) CreateTable(ctx context.Context, sess session.Session) error {
	return g.withConn(ctx, sess, OpCreateTable, Tenant, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callCreateTable)
		return err
	})
}

// ClearTable removes every car and returns the reloaded (empty) inventory.
// Admin only.
func (g *Gateway) ClearTable(ctx context.Context, sess session.Session) ([]Car, error) {
	err := g.withConn(ctx, sess, OpClearTable, Tenant, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callClearTable)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g.reload(ctx, sess, OpClearTable)
}

// InsertCar adds a car and returns the reloaded inventory. Admin only.
func (g *Gateway) InsertCar(ctx context.Context, sess session.Session, in CarInput) ([]Car, error) {
	err := g.withConn(ctx, sess, OpInsertCar, Tenant, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callInsertCar, in.Brand, in.Model, in.Year, in.Price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g.reload(ctx, sess, OpInsertCar)
}

// UpdateCar overwrites every column of car id and returns the reloaded
// inventory. Updating an id that does not exist is not an error. Admin only.
func (g *Gateway) UpdateCar(ctx context.Context, sess session.Session, id int64, in CarInput) ([]Car, error) {
	err := g.withConn(ctx, sess, OpUpdateCar, Tenant, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callUpdateCar, id, in.Brand, in.Model, in.Year, in.Price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g.reload(ctx, sess, OpUpdateCar)
}

// DeleteCarByModel removes every car whose model equals model exactly and
// returns the reloaded inventory. Admin only.
func (g *Gateway) DeleteCarByModel(ctx context.Context, sess session.Session, model string) ([]Car, error) {
	err := g.withConn(ctx, sess, OpDeleteCar, Tenant, func(conn sqlexec.Conn) error {
		_, err := g.execStatement(ctx, conn, callDeleteCar, model)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g.reload(ctx, sess, OpDeleteCar)
}

// SearchCar returns the cars whose model equals model exactly, in the order
// the store returns them. No match yields an empty slice.
func (g *Gateway) SearchCar(ctx context.Context, sess session.Session, model string) ([]Car, error) {
	var cars []Car
	err := g.withConn(ctx, sess, OpSearchCar, Tenant, func(conn sqlexec.Conn) error {
		rows, err := g.queryStatement(ctx, conn, querySearchCar, model)
		if err != nil {
			return err
		}
		cars, err = scanCars(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// ViewCars returns the full inventory in the order the store returns it.
func (g *Gateway) ViewCars(ctx context.Context, sess session.Session) ([]Car, error) {
	var cars []Car
	err := g.withConn(ctx, sess, OpViewCars, Tenant, func(conn sqlexec.Conn) error {
		rows, err := g.queryStatement(ctx, conn, queryViewCars)
		if err != nil {
			return err
		}
		cars, err = scanCars(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// reload fetches the inventory after a successful mutation. A failed reload
// is reported against the mutation that triggered it.
func (g *Gateway) reload(ctx context.Context, sess session.Session, after Operation) ([]Car, error) {
	cars, err := g.ViewCars(ctx, sess)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.KindOf(err), "succeeded but reloading the inventory failed", err).WithOp(string(after))
	}
	return cars, nil
}
