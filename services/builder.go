package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"catalog-converter/models"
	"catalog-converter/source"
	"catalog-converter/utils"
)

// Column names as produced by the 1C inventory export. The column set varies
// between export revisions; every lookup tolerates absence.
const (
	colName         = "Наименование"
	colBarcode      = "Штрихкод"
	colGroup        = "Группа"
	colModification = "Модификация"
	colArticle      = "Артикул"
	colStock        = "Остаток"
	colPrice        = "Цена"
	colDescription  = "Описание"
	colPhoto        = "Фото"

	// DefaultGroupColumn is the slash-delimited grouping field required in
	// grouped mode.
	DefaultGroupColumn = "Полная группа"
)

const (
	displayTimeFormat = "02.01.2006 15:04:05"
)

// Builder runs one full conversion pass over a source file.
type Builder struct {
	GroupColumn string
	// Delimiter is the CSV field delimiter; zero value means ','.
	Delimiter  rune
	classifier *Classifier
	logger     *utils.Logger

	buildRow func(models.RawRecord, *ClassifierStats) (models.CatalogItem, error)
}

// NewBuilder creates a Builder. groupColumn is only consulted in grouped
// mode; pass "" to use DefaultGroupColumn.
func NewBuilder(groupColumn string, logger *utils.Logger) *Builder {
	if groupColumn == "" {
		groupColumn = DefaultGroupColumn
	}
	b := &Builder{
		GroupColumn: groupColumn,
		classifier:  NewClassifier(),
		logger:      logger,
	}
	b.buildRow = b.buildItem
	return b
}

// Build runs an enriched (flat) conversion: every source row becomes one
// classified, normalized CatalogItem. A failure in a single row skips that
// row only; structural failures abort the run.
func (b *Builder) Build(sourcePath string) (*models.Catalog, error) {
	table, err := b.readSource(sourcePath)
	if err != nil {
		return nil, err
	}

	stats := NewClassifierStats()
	items := make([]models.CatalogItem, 0, len(table.Records))
	inStock := 0

	for _, rec := range table.Records {
		item, err := b.buildRow(rec, stats)
		if err != nil {
			b.logger.Warn("[builder] Skipping row %d: %v", rec.Index, err)
			continue
		}
		if item.InStock {
			inStock++
		}
		items = append(items, item)
	}

	now := time.Now()
	catalog := &models.Catalog{
		Success:     true,
		Timestamp:   now.Format(time.RFC3339),
		GeneratedAt: now.Format(displayTimeFormat),
		TotalItems:  len(items),
		Statistics: models.Statistics{
			InStock:         inStock,
			OutOfStock:      len(items) - inStock,
			TotalCategories: len(stats.Categories()),
			TotalBrands:     len(stats.Brands()),
		},
		Categories: stats.Categories(),
		Brands:     stats.Brands(),
		Items:      items,
	}

	b.logger.Info("[builder] Built catalog: %d items (%d in stock, %d brands, %d categories)",
		catalog.TotalItems, inStock, catalog.Statistics.TotalBrands, catalog.Statistics.TotalCategories)
	return catalog, nil
}

// BuildGrouped runs a grouped conversion: raw rows are bucketed by the model
// segment of the full-group column, with no enrichment. The group column is
// mandatory in this mode.
func (b *Builder) BuildGrouped(sourcePath string) (*models.Grouped, error) {
	table, err := b.readSource(sourcePath)
	if err != nil {
		return nil, err
	}

	if !table.HasColumn(b.GroupColumn) {
		return nil, &models.MissingColumnError{
			Column:    b.GroupColumn,
			Available: table.Columns,
		}
	}

	grouped := &models.Grouped{
		GeneratedAt: time.Now().Format(displayTimeFormat),
		Items:       make(map[string][]models.RawRow),
	}

	for _, rec := range table.Records {
		full := rec.Text(b.GroupColumn)
		parts := strings.Split(full, "/")
		if len(parts) < 2 {
			b.logger.Warn("[builder] Row %d: group field %q has no model segment, skipping", rec.Index, full)
			continue
		}
		model := strings.TrimSpace(parts[1])

		row := make(models.RawRow, len(table.Columns))
		for _, col := range table.Columns {
			row[col] = rawValue(rec, col)
		}
		grouped.Items[model] = append(grouped.Items[model], row)
		grouped.TotalItems++
	}

	b.logger.Info("[builder] Built grouped catalog: %d rows across %d models",
		grouped.TotalItems, len(grouped.Items))
	return grouped, nil
}

// readSource validates presence of the source file and parses it.
func (b *Builder) readSource(sourcePath string) (*models.Table, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrSourceNotFound, sourcePath)
	}

	table, err := source.ForPath(sourcePath, b.Delimiter).Read(sourcePath)
	if err != nil {
		return nil, err
	}

	b.logger.Info("[builder] Read %d rows, %d columns from %s",
		len(table.Records), len(table.Columns), sourcePath)
	return table, nil
}

// convertRow runs one row conversion and turns a panic into an error, so a
// corrupt row is skipped instead of aborting the run.
func convertRow(fn func() models.CatalogItem) (item models.CatalogItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row processing failed: %v", r)
		}
	}()
	return fn(), nil
}

// buildItem converts one raw record into a CatalogItem.
func (b *Builder) buildItem(rec models.RawRecord, stats *ClassifierStats) (models.CatalogItem, error) {
	return convertRow(func() models.CatalogItem {
		name := rec.Text(colName)
		barcode := rec.Text(colBarcode)

		id := barcode
		if id == "" {
			id = fmt.Sprintf("item_%d", rec.Index)
		}

		price := rec.Float(colPrice)
		if price == 0 {
			price = b.classifier.PriceFromName(name)
		}

		stock := rec.Int(colStock)
		brand, model, category := b.classifier.Classify(name, stats)

		return models.CatalogItem{
			ID:             id,
			Name:           name,
			Stock:          stock,
			Barcode:        barcode,
			FullGroup:      rec.Text(b.GroupColumn),
			GroupName:      rec.Text(colGroup),
			Modification:   rec.Text(colModification),
			Article:        rec.Text(colArticle),
			Description:    rec.Text(colDescription),
			PhotoReference: rec.Text(colPhoto),
			Brand:          brand,
			Model:          model,
			Category:       category,
			Price:          price,
			InStock:        stock > 0,
			SearchText:     strings.TrimSpace(strings.ToLower(name + " " + barcode)),
		}
	})
}

// rawValue maps a cell to its pass-through JSON value: nil for not-a-value
// cells, a number when the cell is numeric, the trimmed text otherwise.
func rawValue(rec models.RawRecord, col string) any {
	v, ok := rec.Value(col)
	if !ok {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
