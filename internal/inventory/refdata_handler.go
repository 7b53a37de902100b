package inventory

import (
	"sample-stock/internal/refdata"

	"github.com/gofiber/fiber/v2"
)

// GET /api/couriers
func ListCouriersHandler(couriers *refdata.Couriers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := couriers.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// POST /api/couriers (varsa mevcut kaydı döner)
func CreateCourierHandler(couriers *refdata.Couriers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		courier, err := couriers.Ensure(c.UserContext(), body.Name)
		if err != nil {
			return err
		}
		return c.JSON(courier)
	}
}

// GET /api/client-purposes
func ListClientPurposesHandler(purposes *refdata.ClientPurposes) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := purposes.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// PUT /api/client-purposes
func UpsertClientPurposeHandler(purposes *refdata.ClientPurposes) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Client  string `json:"client"`
			Purpose string `json:"purpose"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		cp, err := purposes.Upsert(c.UserContext(), body.Client, body.Purpose)
		if err != nil {
			return err
		}
		return c.JSON(cp)
	}
}

// GET /api/master-data
func ListMasterDataHandler(master *refdata.MasterData) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := master.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// POST /api/master-data/sync
// Büyük tablolar parça parça gelir; sadece ilk parça clear=true gönderir
func SyncMasterDataHandler(master *refdata.MasterData) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Data  []refdata.MasterRow `json:"data"`
			Clear bool                `json:"clear"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Data == nil {
			return fiber.NewError(fiber.StatusBadRequest, "data bir dizi olmalı")
		}

		report, err := master.Sync(c.UserContext(), body.Data, body.Clear)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"count":  report.Received,
			"report": report,
		})
	}
}

// GET /api/clf-data
func ListCLFDataHandler(clf *refdata.CLFData) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := clf.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// POST /api/clf-data/sync (tabloyu tamamen değiştirir)
func SyncCLFDataHandler(clf *refdata.CLFData) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Data []refdata.CLFRow `json:"data"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Data == nil {
			return fiber.NewError(fiber.StatusBadRequest, "data bir dizi olmalı")
		}

		n, err := clf.Replace(c.UserContext(), body.Data)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"count": n})
	}
}
