package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

// exportProductsXlsx streams the whole catalog as a spreadsheet.
func exportProductsXlsx(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Order("id").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	f := excelize.NewFile()
	headers := []string{"ID", "Nome", "Descricao", "Preco", "Estoque", "Cor", "Imagem"}
	for i, h := range headers {
		f.SetCellValue("Sheet1", fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, p := range products {
		row := i + 2
		f.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), p.ID)
		f.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), p.Name)
		f.SetCellValue("Sheet1", fmt.Sprintf("C%d", row), p.Description)
		f.SetCellValue("Sheet1", fmt.Sprintf("D%d", row), p.Price)
		f.SetCellValue("Sheet1", fmt.Sprintf("E%d", row), p.Stock)
		f.SetCellValue("Sheet1", fmt.Sprintf("F%d", row), p.Color)
		f.SetCellValue("Sheet1", fmt.Sprintf("G%d", row), p.Image)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="produtos.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if err := f.Write(c.Response()); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}

type productCsvRow struct {
	Name        string  `csv:"name"`
	Description string  `csv:"description"`
	Price       float64 `csv:"price"`
	Stock       int     `csv:"stock"`
	Color       string  `csv:"color"`
	Image       string  `csv:"image"`
}

// importProductsCSV bulk-loads catalog rows from an uploaded CSV file.
// Rows without a name are skipped.
func importProductsCSV(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "CSV file is required", nil)
	}
	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to open upload", err.Error())
	}
	defer src.Close()

	var rows []productCsvRow
	if err := gocsv.Unmarshal(src, &rows); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CSV", "Unable to parse CSV", err.Error())
	}

	imported := 0
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}
		product := domain.Product{
			ID:          common.UUIDint64(),
			Name:        strings.TrimSpace(row.Name),
			Description: row.Description,
			Price:       row.Price,
			Stock:       row.Stock,
			Color:       row.Color,
			Image:       row.Image,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := GetDB(c).Create(&product).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to import product", err.Error())
		}
		imported++
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), fmt.Sprintf("produtos/import %d", imported))
	return backToAdmin(c)
}
