package database

import (
	"encoding/json"
	"fmt"
	"log"

	"esg_assessment_backend/internal/config"
	"esg_assessment_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.AssessmentQuestion{},
		&model.AssessmentDraft{},
		&model.AssessmentSubmission{},
		&model.Event{},
		&model.LearningMaterial{},
		&model.FAQ{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults inserts starter rows when tables are empty.
func seedDefaults(db *gorm.DB) {
	var faqCount int64
	db.Model(&model.FAQ{}).Count(&faqCount)
	if faqCount == 0 {
		defaults := []model.FAQ{
			{
				Question:    bilingual("What is the ESG self-assessment?", "Apakah penilaian kendiri ESG?"),
				Answer:      bilingual("A questionnaire that helps your company measure its environmental, social and governance readiness.", "Soal selidik yang membantu syarikat anda mengukur kesediaan alam sekitar, sosial dan tadbir urus."),
				Order:       1,
				IsPublished: true,
			},
			{
				Question:    bilingual("Can I save my progress and continue later?", "Bolehkah saya menyimpan kemajuan dan menyambung kemudian?"),
				Answer:      bilingual("Yes. Use the save button inside the assessment; your draft is kept per assessment year.", "Ya. Gunakan butang simpan di dalam penilaian; draf anda disimpan mengikut tahun penilaian."),
				Order:       2,
				IsPublished: true,
			},
		}
		for _, f := range defaults {
			db.Create(&f)
		}
	}
}

func bilingual(en, ms string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"en": en, "ms": ms})
	return raw
}
