package importer

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tastycorner/internal/database"
	"tastycorner/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CSV file names looked up in the data directory. Missing files are skipped.
const (
	UsersFile   = "users.csv"
	MenuFile    = "menu.csv"
	CouponsFile = "coupons.csv"
	OrdersFile  = "orders.csv"
)

// Result counts the rows actually written; rows that already existed are not counted.
type Result struct {
	Users      int64
	MenuItems  int64
	Coupons    int64
	Orders     int64
	OrderItems int64
	Employees  int64
	Attendance int64
}

type Importer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// ImportDir loads users, menu items, coupons and orders from dir. Existing
// rows win: a row whose key is already present is left untouched.
func (im *Importer) ImportDir(dir string) (*Result, error) {
	result := &Result{}

	steps := []struct {
		file string
		run  func([]map[string]string, *Result) error
	}{
		{UsersFile, im.importUsers},
		{MenuFile, im.importMenu},
		{CouponsFile, im.importCoupons},
		{OrdersFile, im.importOrders},
	}

	for _, step := range steps {
		rows, err := readCSV(filepath.Join(dir, step.file))
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Skipping %s: not found", step.file)
			continue
		}
		if err != nil {
			return result, err
		}
		if err := step.run(rows, result); err != nil {
			return result, fmt.Errorf("%s: %w", step.file, err)
		}
	}
	return result, im.resetSequences()
}

// resetSequences moves Postgres serial counters past the imported ids so the
// next row the app creates does not collide.
func (im *Importer) resetSequences() error {
	if im.db.Dialector.Name() != "postgres" {
		return nil
	}
	keys := map[string]string{"users": "user_id", "menu_items": "item_id", "orders": "order_id", "coupons": "id", "order_items": "id"}
	for table, column := range keys {
		query := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 1)) FROM %s", table, column, column, table)
		if err := im.db.Exec(query).Error; err != nil {
			return fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}
	return nil
}

func (im *Importer) importUsers(rows []map[string]string, result *Result) error {
	for i, row := range rows {
		id, err := parseUint(row["user_id"])
		if err != nil {
			return fmt.Errorf("row %d: invalid user_id: %w", i+1, err)
		}
		user := models.User{
			UserID:       id,
			Email:        strings.ToLower(strings.TrimSpace(row["email"])),
			PasswordHash: row["password_hash"],
			Name:         row["name"],
			Phone:        row["phone"],
			Address:      row["address"],
			CreatedAt:    parseTimestamp(row["created_at"]),
		}
		n, err := im.insertIgnore(&user)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		result.Users += n
	}
	return nil
}

func (im *Importer) importMenu(rows []map[string]string, result *Result) error {
	for i, row := range rows {
		id, err := parseUint(row["item_id"])
		if err != nil {
			return fmt.Errorf("row %d: invalid item_id: %w", i+1, err)
		}
		price, err := strconv.ParseFloat(row["price"], 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid price: %w", i+1, err)
		}
		item := models.MenuItem{
			ItemID:      id,
			Name:        row["name"],
			Description: row["description"],
			Price:       price,
			Category:    row["category"],
			Image:       row["image"],
			IsActive:    true,
		}
		n, err := im.insertIgnore(&item)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		result.MenuItems += n
	}
	return nil
}

func (im *Importer) importCoupons(rows []map[string]string, result *Result) error {
	for i, row := range rows {
		value, err := strconv.ParseFloat(row["discount_value"], 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid discount_value: %w", i+1, err)
		}
		coupon := models.Coupon{
			Code:          strings.ToUpper(strings.TrimSpace(row["code"])),
			DiscountType:  row["discount_type"],
			DiscountValue: value,
			MinOrder:      parseFloatOr(row["min_order"], 0),
			MaxDiscount:   parseOptionalFloat(row["max_discount"]),
			UsageLimit:    parseOptionalInt(row["usage_limit"]),
			UsedCount:     int(parseFloatOr(row["used_count"], 0)),
			ExpiryDate:    optionalString(row["expiry_date"]),
			IsActive:      parseActive(row["is_active"]),
		}
		n, err := im.insertIgnore(&coupon)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		// Create skips zero-value fields that carry a default, so an inactive
		// coupon needs an explicit update.
		if n == 1 && !coupon.IsActive {
			if err := im.db.Model(&coupon).Update("is_active", false).Error; err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		result.Coupons += n
	}
	return nil
}

// orderLine is one element of the JSON array in the orders items column.
type orderLine struct {
	ItemID    *uint   `json:"item_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Allergies string  `json:"allergies"`
}

func (im *Importer) importOrders(rows []map[string]string, result *Result) error {
	for i, row := range rows {
		id, err := parseUint(row["order_id"])
		if err != nil {
			return fmt.Errorf("row %d: invalid order_id: %w", i+1, err)
		}

		var lines []orderLine
		if raw := strings.TrimSpace(row["items"]); raw != "" {
			if err := json.Unmarshal([]byte(raw), &lines); err != nil {
				log.Printf("Failed to parse items for order %d: %v", id, err)
				lines = nil
			}
		}

		status := models.OrderStatus(row["status"])
		if !status.Valid() {
			status = models.OrderPending
		}

		order := models.Order{
			OrderID:     id,
			UserID:      parseOptionalUint(row["user_id"]),
			Subtotal:    parseFloatOr(row["subtotal"], 0),
			Tax:         parseFloatOr(row["tax"], 0),
			DeliveryFee: parseFloatOr(row["delivery_fee"], 0),
			Tip:         parseFloatOr(row["tip"], 0),
			Total:       parseFloatOr(row["total"], 0),
			Status:      string(status),
			CouponCode:  optionalString(row["coupon_code"]),
			Discount:    parseFloatOr(row["discount"], 0),
			CreatedAt:   parseTimestamp(row["created_at"]),
		}

		err = im.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&order)
			if res.Error != nil {
				return res.Error
			}
			// Lines are only written with a new order so a second run adds nothing.
			if res.RowsAffected == 0 {
				return nil
			}
			result.Orders++
			for _, line := range lines {
				item := models.OrderItem{
					OrderID:   order.OrderID,
					ItemID:    line.ItemID,
					Name:      line.Name,
					Price:     line.Price,
					Quantity:  line.Quantity,
					Allergies: line.Allergies,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				result.OrderItems++
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

type legacyEmployee struct {
	EmployeeID      string
	FirstName       string
	LastName        string
	Email           string
	Gender          sql.NullString
	DOB             sql.NullString `gorm:"column:dob"`
	Mobile          sql.NullString
	Address         sql.NullString
	JobTitle        sql.NullString
	Notes           sql.NullString
	Status          sql.NullString
	Schedule        sql.NullString
	HoursThisPeriod sql.NullFloat64
	LastPaidDate    sql.NullString
	ProfilePicture  sql.NullString
	HourlyRate      sql.NullFloat64
	CreatedAt       sql.NullString
}

type legacyAttendance struct {
	EmployeeID   string
	Date         string
	CheckInTime  sql.NullString
	CheckOutTime sql.NullString
	HoursWorked  sql.NullFloat64
	CreatedAt    sql.NullString
}

// ImportLegacy copies employees and attendance out of a standalone sqlite
// employees database.
func (im *Importer) ImportLegacy(path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	legacy, err := database.Initialize("sqlite:///"+path, "silent")
	if err != nil {
		return nil, err
	}
	if sqlDB, err := legacy.DB(); err == nil {
		defer sqlDB.Close()
	}

	result := &Result{}

	var employees []legacyEmployee
	err = legacy.Table("employees").
		Select("employee_id, first_name, last_name, email, gender, dob, mobile, address, job_title, notes, status, schedule, hours_this_period, last_paid_date, profile_picture, hourly_rate, created_at").
		Order("employee_id").
		Scan(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy employees: %w", err)
	}

	for _, e := range employees {
		employee := models.Employee{
			EmployeeID:      e.EmployeeID,
			FirstName:       e.FirstName,
			LastName:        e.LastName,
			Email:           e.Email,
			Gender:          e.Gender.String,
			DOB:             e.DOB.String,
			Mobile:          e.Mobile.String,
			Address:         e.Address.String,
			JobTitle:        e.JobTitle.String,
			Notes:           e.Notes.String,
			Status:          e.Status.String,
			HoursThisPeriod: e.HoursThisPeriod.Float64,
			ProfilePicture:  e.ProfilePicture.String,
			CreatedAt:       parseTimestamp(e.CreatedAt.String),
		}
		if employee.Status == "" {
			employee.Status = models.EmployeeActive
		}
		if e.Schedule.Valid && json.Valid([]byte(e.Schedule.String)) {
			employee.Schedule = datatypes.JSON(e.Schedule.String)
		}
		if e.LastPaidDate.Valid && e.LastPaidDate.String != "" {
			paid := e.LastPaidDate.String
			employee.LastPaidDate = &paid
		}
		if e.HourlyRate.Valid {
			rate := e.HourlyRate.Float64
			employee.HourlyRate = &rate
		}
		n, err := im.insertIgnore(&employee)
		if err != nil {
			return result, fmt.Errorf("employee %s: %w", e.EmployeeID, err)
		}
		result.Employees += n
	}

	var rows []legacyAttendance
	err = legacy.Table("attendance").
		Select("employee_id, date, check_in_time, check_out_time, hours_worked, created_at").
		Order("date").
		Scan(&rows).Error
	if err != nil {
		return result, fmt.Errorf("failed to read legacy attendance: %w", err)
	}

	for _, a := range rows {
		attendance := models.Attendance{
			EmployeeID:   a.EmployeeID,
			Date:         a.Date,
			CheckInTime:  parseOptionalTimestamp(a.CheckInTime),
			CheckOutTime: parseOptionalTimestamp(a.CheckOutTime),
			HoursWorked:  a.HoursWorked.Float64,
			CreatedAt:    parseTimestamp(a.CreatedAt.String),
		}
		n, err := im.insertIgnore(&attendance)
		if err != nil {
			return result, fmt.Errorf("attendance %s %s: %w", a.EmployeeID, a.Date, err)
		}
		result.Attendance += n
	}

	return result, nil
}

func (im *Importer) insertIgnore(value interface{}) (int64, error) {
	res := im.db.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	return res.RowsAffected, res.Error
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(f)
}

// parseCSV reads a headed CSV into one map per row keyed by column name.
func parseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseTimestamp falls back to the current time for blank or unreadable values.
func parseTimestamp(value string) time.Time {
	if t, ok := parseTime(value); ok {
		return t
	}
	return time.Now()
}

func parseOptionalTimestamp(value sql.NullString) *time.Time {
	if !value.Valid {
		return nil
	}
	t, ok := parseTime(value.String)
	if !ok {
		return nil
	}
	return &t
}

func parseUint(value string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	return uint(n), err
}

func parseOptionalUint(value string) *uint {
	n, err := parseUint(value)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

func parseFloatOr(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseOptionalFloat(value string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseOptionalInt(value string) *int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") || strings.EqualFold(value, "null") {
		return nil
	}
	return &value
}

func parseActive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "true", "1", "yes":
		return true
	}
	return false
}
