package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID gives a row a fresh UUID before insert when the caller left it empty.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error               { assignID(&u.Id); return nil }
func (t *PasswordResetToken) BeforeCreate(*gorm.DB) error { assignID(&t.Id); return nil }
func (t *Transcript) BeforeCreate(*gorm.DB) error         { assignID(&t.Id); return nil }
func (a *Arrangement) BeforeCreate(*gorm.DB) error        { assignID(&a.Id); return nil }
func (d *Document) BeforeCreate(*gorm.DB) error           { assignID(&d.Id); return nil }
func (t *FuneralTask) BeforeCreate(*gorm.DB) error        { assignID(&t.Id); return nil }
func (m *UsageMetric) BeforeCreate(*gorm.DB) error        { assignID(&m.Id); return nil }
func (b *BillingPeriod) BeforeCreate(*gorm.DB) error      { assignID(&b.Id); return nil }

// All lists every table for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&PasswordResetToken{},
		&Transcript{},
		&Arrangement{},
		&Document{},
		&FuneralTask{},
		&UsageMetric{},
		&BillingPeriod{},
	}
}
