package demo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"datahealth_api/internal/masterdata/models"
)

// Record counts per data type. The volumes are small enough for an
// in-memory refresh but large enough that percentage based defect
// injection produces stable scores.
const (
	productCount     = 200
	locationCount    = 100
	customerCount    = 150
	supplierCount    = 120
	timeProfileCount = 30
	resourceCount    = 80
)

// Generator produces deterministic sample master data with injected
// quality defects. The same seed always yields the same datasets.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC().Truncate(time.Hour),
	}
}

// GenerateAll builds one dataset per data type.
func (g *Generator) GenerateAll() map[models.DataType]*models.Dataset {
	return map[models.DataType]*models.Dataset{
		models.Products:     g.GenerateProducts(),
		models.Locations:    g.GenerateLocations(),
		models.Customers:    g.GenerateCustomers(),
		models.Suppliers:    g.GenerateSuppliers(),
		models.TimeProfiles: g.GenerateTimeProfiles(),
		models.Resources:    g.GenerateResources(),
	}
}

func (g *Generator) chance(p float64) bool {
	return g.rnd.Float64() < p
}

func (g *Generator) pick(options []string) string {
	return options[g.rnd.Intn(len(options))]
}

func (g *Generator) between(min, max float64) float64 {
	return min + g.rnd.Float64()*(max-min)
}

// createdOn is a creation timestamp one to three years in the past.
func (g *Generator) createdOn() time.Time {
	days := 365 + g.rnd.Intn(730)
	return g.now.AddDate(0, 0, -days)
}

// lastUpdated returns a recent timestamp, or a stale one with the given
// probability. Stale means older than the 90 day freshness window.
func (g *Generator) lastUpdated(stalePct float64) time.Time {
	if g.chance(stalePct) {
		days := 91 + g.rnd.Intn(275)
		return g.now.AddDate(0, 0, -days)
	}
	days := g.rnd.Intn(90)
	return g.now.AddDate(0, 0, -days)
}

func (g *Generator) maybeNull(missingPct float64, v models.Value) models.Value {
	if g.chance(missingPct) {
		return models.NullValue()
	}
	return v
}

var (
	productAdjectives = []string{"Premium", "Standard", "Industrial", "Compact", "Heavy Duty", "Eco", "Classic", "Advanced"}
	productNouns      = []string{"Widget", "Gearbox", "Valve", "Panel", "Bearing", "Sensor", "Filter", "Motor", "Coupling", "Bracket"}
	productCategories = []string{"RAW", "WIP", "FG", "SPARE", "SERVICE"}
	subcategories     = []string{"Mechanical", "Electrical", "Packaging", "Chemicals", "Consumables"}
	unitsOfMeasure    = []string{"EA", "KG", "L", "M", "PC", "CS"}

	cityPool = []string{"Hamburg", "Rotterdam", "Lyon", "Milan", "Warsaw", "Prague", "Madrid", "Vienna", "Gothenburg", "Antwerp"}
	countryPool = []string{"Germany", "Netherlands", "France", "Italy", "Poland", "Czechia", "Spain", "Austria", "Sweden", "Belgium"}
	regionPool  = []string{"EMEA North", "EMEA South", "EMEA Central", "EMEA East", "EMEA West"}
	locationTypes = []string{"PLANT", "DC", "WAREHOUSE", "STORE", "SUPPLIER", "CUSTOMER"}

	companySuffixes = []string{"GmbH", "B.V.", "S.A.", "Ltd", "AG", "Sp. z o.o."}
	firstNames      = []string{"Anna", "Marco", "Sofia", "Lukas", "Elena", "Jan", "Marie", "Tomas", "Ines", "Pavel"}
	lastNames       = []string{"Weber", "Rossi", "Novak", "Garcia", "Bakker", "Kowalski", "Muller", "Fischer", "Jansen", "Dubois"}
	customerTypes   = []string{"RETAIL", "WHOLESALE", "DISTRIBUTOR", "ONLINE"}
	supplierTypes   = []string{"RAW_MATERIAL", "COMPONENT", "PACKAGING", "SERVICE"}
	paymentTerms    = []string{"NET30", "NET45", "NET60", "COD"}

	resourceTypes = []string{"PRODUCTION_LINE", "PACKAGING_LINE", "TRANSPORT", "HANDLING"}
	capacityUnits = []string{"HOURS", "UNITS", "PALLETS"}
	maintenanceSchedules = []string{"WEEKLY", "MONTHLY", "QUARTERLY", "ANNUAL"}

	timeUnits = []string{"DAY", "WEEK", "MONTH", "QUARTER"}
)

// GenerateProducts injects missing attributes, inconsistent name casing,
// invalid units, net weights above gross and stale records. A small
// share of IDs repeat to surface duplicate detection.
func (g *Generator) GenerateProducts() *models.Dataset {
	ds := models.NewDataset(models.Products, models.Schema(models.Products))
	for i := 0; i < productCount; i++ {
		id := fmt.Sprintf("P%04d", i+1)
		if i > 10 && g.chance(0.02) {
			id = fmt.Sprintf("P%04d", g.rnd.Intn(10)+1)
		}

		name := fmt.Sprintf("%s %s %d", g.pick(productAdjectives), g.pick(productNouns), 100+g.rnd.Intn(900))
		if g.chance(0.05) {
			name = strings.ToUpper(name)
		}

		uom := g.pick(unitsOfMeasure)
		if g.chance(0.03) {
			uom = "INVALID"
		}

		gross := g.between(0.5, 120)
		net := gross * g.between(0.6, 0.95)
		if g.chance(0.05) {
			net = gross * g.between(1.05, 1.4)
		}

		cells := []models.Value{
			models.TextValue(id),
			models.TextValue(name),
			models.TextValue(g.pick(productCategories)),
			g.maybeNull(0.10, models.TextValue(g.pick(subcategories))),
			models.TextValue(uom),
			g.maybeNull(0.10, models.NumberValue(round2(gross))),
			models.NumberValue(round2(net)),
			g.maybeNull(0.10, models.NumberValue(float64(30+g.rnd.Intn(700)))),
			g.maybeNull(0.10, models.NumberValue(round2(g.between(1, 2500)))),
			models.BoolValue(!g.chance(0.05)),
			models.TimeValue(g.createdOn()),
			models.TimeValue(g.lastUpdated(0.20)),
		}
		_ = ds.AppendRow(cells)
	}
	return ds
}

// GenerateLocations injects missing addresses and capacities, lower
// cased names, dangling parent references and stale records. A few
// coordinates fall outside the valid ranges.
func (g *Generator) GenerateLocations() *models.Dataset {
	ds := models.NewDataset(models.Locations, models.Schema(models.Locations))
	for i := 0; i < locationCount; i++ {
		id := fmt.Sprintf("L%03d", i+1)
		city := g.pick(cityPool)

		name := fmt.Sprintf("%s %s", city, g.pick(locationTypes))
		if g.chance(0.07) {
			name = strings.ToLower(name)
		}

		parent := fmt.Sprintf("L%03d", g.rnd.Intn(locationCount)+1)
		if g.chance(0.05) {
			parent = "INVALID_LOC"
		}

		lat := g.between(-90, 90)
		lon := g.between(-180, 180)
		if g.chance(0.03) {
			lat = g.between(91, 120)
		}
		if g.chance(0.03) {
			lon = g.between(181, 250)
		}

		cells := []models.Value{
			models.TextValue(id),
			models.TextValue(name),
			models.TextValue(g.pick(locationTypes)),
			g.maybeNull(0.15, models.TextValue(fmt.Sprintf("%d Industriestrasse", 1+g.rnd.Intn(200)))),
			models.TextValue(city),
			models.TextValue(g.pick(countryPool)),
			g.maybeNull(0.15, models.TextValue(g.pick(regionPool))),
			g.maybeNull(0.15, models.NumberValue(float64(1000+g.rnd.Intn(50000)))),
			models.NumberValue(round4(lat)),
			models.NumberValue(round4(lon)),
			g.maybeNull(0.15, models.TextValue(parent)),
			models.BoolValue(!g.chance(0.04)),
			models.TimeValue(g.createdOn()),
			models.TimeValue(g.lastUpdated(0.25)),
		}
		_ = ds.AppendRow(cells)
	}
	return ds
}

// GenerateCustomers injects missing contact data, malformed emails and
// phone numbers, and dangling location references.
func (g *Generator) GenerateCustomers() *models.Dataset {
	ds := models.NewDataset(models.Customers, models.Schema(models.Customers))
	for i := 0; i < customerCount; i++ {
		id := fmt.Sprintf("C%04d", i+1)
		contact := fmt.Sprintf("%s %s", g.pick(firstNames), g.pick(lastNames))
		company := fmt.Sprintf("%s %s", g.pick(lastNames), g.pick(companySuffixes))

		email := fmt.Sprintf("%s@%s.example.com", strings.ToLower(strings.ReplaceAll(contact, " ", ".")), strings.ToLower(strings.Fields(company)[0]))
		if g.chance(0.08) {
			email = strings.ReplaceAll(email, "@", "#")
		}

		phone := fmt.Sprintf("+49-%03d-%07d", g.rnd.Intn(900)+100, g.rnd.Intn(9000000)+1000000)
		if g.chance(0.15) {
			phone = fmt.Sprintf("%d", g.rnd.Intn(99999999))
		}

		location := models.TextValue(fmt.Sprintf("L%03d", g.rnd.Intn(locationCount)+1))
		if g.chance(0.10) {
			location = models.NullValue()
		}

		cells := []models.Value{
			models.TextValue(id),
			models.TextValue(company),
			models.TextValue(g.pick(customerTypes)),
			g.maybeNull(0.12, models.TextValue(contact)),
			g.maybeNull(0.12, models.TextValue(email)),
			g.maybeNull(0.12, models.TextValue(phone)),
			models.TextValue(g.pick(paymentTerms)),
			g.maybeNull(0.12, models.NumberValue(float64(5000+g.rnd.Intn(500000)))),
			location,
			models.BoolValue(!g.chance(0.05)),
			models.TimeValue(g.createdOn()),
			models.TimeValue(g.lastUpdated(0.15)),
		}
		_ = ds.AppendRow(cells)
	}
	return ds
}

// GenerateSuppliers injects missing attributes, negative lead times and
// quality ratings above the five point scale.
func (g *Generator) GenerateSuppliers() *models.Dataset {
	ds := models.NewDataset(models.Suppliers, models.Schema(models.Suppliers))
	for i := 0; i < supplierCount; i++ {
		id := fmt.Sprintf("S%04d", i+1)
		contact := fmt.Sprintf("%s %s", g.pick(firstNames), g.pick(lastNames))
		company := fmt.Sprintf("%s %s", g.pick(lastNames), g.pick(companySuffixes))

		leadTime := float64(2 + g.rnd.Intn(45))
		if g.chance(0.03) {
			leadTime = -leadTime
		}

		rating := round2(g.between(2, 5))
		if g.chance(0.05) {
			rating = round2(g.between(5.1, 9))
		}

		location := models.TextValue(fmt.Sprintf("L%03d", g.rnd.Intn(locationCount)+1))
		if g.chance(0.08) {
			location = models.NullValue()
		}

		cells := []models.Value{
			models.TextValue(id),
			models.TextValue(company),
			models.TextValue(g.pick(supplierTypes)),
			g.maybeNull(0.10, models.TextValue(contact)),
			g.maybeNull(0.10, models.TextValue(fmt.Sprintf("purchasing@%s.example.com", strings.ToLower(strings.Fields(company)[0])))),
			g.maybeNull(0.10, models.TextValue(fmt.Sprintf("+48-%03d-%07d", g.rnd.Intn(900)+100, g.rnd.Intn(9000000)+1000000))),
			models.TextValue(g.pick(paymentTerms)),
			models.NumberValue(leadTime),
			g.maybeNull(0.10, models.NumberValue(rating)),
			location,
			models.BoolValue(!g.chance(0.04)),
			models.TimeValue(g.createdOn()),
			models.TimeValue(g.lastUpdated(0.18)),
		}
		_ = ds.AppendRow(cells)
	}
	return ds
}

// GenerateTimeProfiles injects profiles whose end date precedes the
// start date and missing descriptions.
func (g *Generator) GenerateTimeProfiles() *models.Dataset {
	ds := models.NewDataset(models.TimeProfiles, models.Schema(models.TimeProfiles))
	for i := 0; i < timeProfileCount; i++ {
		id := fmt.Sprintf("TP%03d", i+1)
		unit := g.pick(timeUnits)

		start := g.now.AddDate(0, -g.rnd.Intn(24), 0)
		end := start.AddDate(0, 6+g.rnd.Intn(30), 0)
		if g.chance(0.10) {
			start, end = end, start
		}

		cells := []models.Value{
			models.TextValue(id),
			models.TextValue(fmt.Sprintf("%s Planning Profile %d", unit, i+1)),
			models.TextValue(unit),
			models.NumberValue(float64(1 + g.rnd.Intn(12))),
			models.TimeValue(start),
			models.TimeValue(end),
			g.maybeNull(0.20, models.TextValue(fmt.Sprintf("Rolling %s horizon for S&OP", strings.ToLower(unit)))),
			models.BoolValue(!g.chance(0.03)),
			models.TimeValue(g.createdOn()),
			models.TimeValue(g.lastUpdated(0.10)),
		}
		_ = ds.AppendRow(cells)
	}
	return ds
}

// GenerateResources injects missing capacities and costs, efficiency
// ratings above 100 percent, upper cased names and dangling location
// references.
func (g *Generator) GenerateResources() *models.Dataset {
	ds := models.NewDataset(models.Resources, models.Schema(models.Resources))
	for i := 0; i < resourceCount; i++ {
		id := fmt.Sprintf("R%03d", i+1)

		name := fmt.Sprintf("%s %d", titleCase(g.pick(resourceTypes)), i+1)
		if g.chance(0.08) {
			name = strings.ToUpper(name)
		}

		efficiency := round2(g.between(55, 99))
		if g.chance(0.07) {
			efficiency = round2(g.between(101, 140))
		}

		location := models.TextValue(fmt.Sprintf("L%03d", g.rnd.Intn(locationCount)+1))
		if g.chance(0.10) {
			location = models.NullValue()
		}

		cells := []models.Value{
			models.TextValue(id),
			models.TextValue(name),
			models.TextValue(g.pick(resourceTypes)),
			models.TextValue(g.pick(capacityUnits)),
			g.maybeNull(0.15, models.NumberValue(float64(100 + g.rnd.Intn(5000)))),
			location,
			g.maybeNull(0.15, models.NumberValue(round2(g.between(20, 400)))),
			models.NumberValue(efficiency),
			models.TextValue(g.pick(maintenanceSchedules)),
			models.BoolValue(!g.chance(0.05)),
			models.TimeValue(g.createdOn()),
			models.TimeValue(g.lastUpdated(0.12)),
		}
		_ = ds.AppendRow(cells)
	}
	return ds
}

func titleCase(s string) string {
	parts := strings.Split(strings.ToLower(s), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func round4(f float64) float64 {
	return float64(int64(f*10000+0.5)) / 10000
}
