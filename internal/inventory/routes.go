package inventory

import (
	"sample-stock/internal/ledger"
	"sample-stock/internal/refdata"
	"sample-stock/internal/spreadsheet"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Stock     *ledger.StockLedger
	Shipments *ledger.ShipmentLedger
	Couriers  *refdata.Couriers
	Purposes  *refdata.ClientPurposes
	Master    *refdata.MasterData
	CLF       *refdata.CLFData
	Importer  *spreadsheet.Importer
	UploadDir string
}

// Register mounts the stock, shipment and reference data routes under api.
func Register(api fiber.Router, d Deps) {
	// Stok
	api.Get("/inventory", ListStockHandler(d.Stock))
	api.Get("/inventory/trash", ListStockTrashHandler(d.Stock))
	api.Post("/inventory", CreateStockHandler(d.Stock))
	api.Put("/inventory/:id", UpdateStockHandler(d.Stock))
	api.Delete("/inventory/trash/:id", HardDeleteStockHandler(d.Stock))
	api.Delete("/inventory/:id", SoftDeleteStockHandler(d.Stock))
	api.Post("/inventory/restore/:id", RestoreStockHandler(d.Stock))

	// Sevkiyatlar
	api.Get("/shipments", ListShipmentsHandler(d.Shipments))
	api.Get("/shipments/trash", ListShipmentTrashHandler(d.Shipments))
	api.Post("/shipments", ConfirmShipmentHandler(d.Shipments))
	api.Post("/shipments/trash/:id", TrashShipmentHandler(d.Shipments))
	api.Delete("/shipments/trash/:id", PurgeShipmentHandler(d.Shipments))
	api.Delete("/shipments/:id", UndoShipmentHandler(d.Shipments))
	api.Post("/shipments/restore/:id", RestoreShipmentHandler(d.Shipments))

	// Referans verileri
	api.Get("/couriers", ListCouriersHandler(d.Couriers))
	api.Post("/couriers", CreateCourierHandler(d.Couriers))
	api.Get("/client-purposes", ListClientPurposesHandler(d.Purposes))
	api.Put("/client-purposes", UpsertClientPurposeHandler(d.Purposes))
	api.Get("/master-data", ListMasterDataHandler(d.Master))
	api.Post("/master-data/sync", SyncMasterDataHandler(d.Master))
	api.Get("/clf-data", ListCLFDataHandler(d.CLF))
	api.Post("/clf-data/sync", SyncCLFDataHandler(d.CLF))

	// Excel
	api.Post("/import/stock", ImportStockHandler(d.Importer))
	api.Post("/export/stock-template", ExportStockHandler(d.Stock, d.Purposes))
	api.Post("/export/history-template", ExportHistoryHandler(d.Shipments, d.Purposes))

	api.Post("/upload", UploadHandler(d.UploadDir))
}

// NewDeps builds every collaborator on one store.
func NewDeps(store *ledger.Store, uploadDir string) Deps {
	return Deps{
		Stock:     ledger.NewStockLedger(store),
		Shipments: ledger.NewShipmentLedger(store),
		Couriers:  refdata.NewCouriers(store),
		Purposes:  refdata.NewClientPurposes(store),
		Master:    refdata.NewMasterData(store),
		CLF:       refdata.NewCLFData(store),
		Importer:  spreadsheet.NewImporter(store),
		UploadDir: uploadDir,
	}
}
