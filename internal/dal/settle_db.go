package dal

import (
	"fmt"
	"log"
	"time"

	"iso-settlement-api/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// SettleDB holds the high-churn settlement schema: settlements, merchant
// settlements, orders, solicitations and the applied-transaction ledger.
var SettleDB *gorm.DB

func InitSettleDB() {
	c := config.C.MysqlSettle
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect settlement db failed: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
	SettleDB = db
}
