package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Booking holds the shop catalog settings read by the booking wizard and
// the admin panel.
type Booking struct {
	Timezone      string         `yaml:"timezone"`
	WindowDays    int            `yaml:"window_days"`
	SlotTimes     []string       `yaml:"slot_times"`
	CancelReasons []string       `yaml:"cancel_reasons"`
	CashConcepts  CashConcepts   `yaml:"cash_concepts"`
	Notification  Notification   `yaml:"notification"`
	Locale        LocaleSettings `yaml:"locale"`
}

type CashConcepts struct {
	Income  []QuickConcept `yaml:"income" json:"income"`
	Expense []QuickConcept `yaml:"expense" json:"expense"`
}

type QuickConcept struct {
	Label  string  `yaml:"label" json:"label"`
	Amount float64 `yaml:"amount" json:"amount"`
}

type Notification struct {
	Subject string `yaml:"subject"`
}

type LocaleSettings struct {
	Currency string `yaml:"currency"`
}

func DefaultBooking() Booking {
	return Booking{
		Timezone:   "America/Argentina/Buenos_Aires",
		WindowDays: 7,
		SlotTimes: []string{
			"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
			"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
			"17:00", "17:30", "18:00",
		},
		CancelReasons: []string{
			"No se presentó",
			"Canceló por teléfono",
			"Emergencia personal",
			"Cambio de horario",
		},
		CashConcepts: CashConcepts{
			Income: []QuickConcept{
				{Label: "Servicio extra", Amount: 2000},
				{Label: "Venta de producto", Amount: 1500},
				{Label: "Propina", Amount: 500},
				{Label: "Otro ingreso", Amount: 0},
			},
			Expense: []QuickConcept{
				{Label: "Compra productos", Amount: 5000},
				{Label: "Insumos", Amount: 1000},
				{Label: "Gasto operativo", Amount: 2000},
				{Label: "Otro gasto", Amount: 0},
			},
		},
		Notification: Notification{Subject: "Nuevo turno reservado"},
		Locale:       LocaleSettings{Currency: "ARS"},
	}
}

// LoadBooking reads the YAML catalog at path. Keys missing from the file
// keep their defaults; an empty path returns the defaults.
func LoadBooking(path string) (Booking, error) {
	b := DefaultBooking()
	if path == "" {
		return b, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("read booking config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("parse booking config: %w", err)
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	return b, nil
}

func (b Booking) Validate() error {
	if b.WindowDays <= 0 {
		return fmt.Errorf("booking config: window_days must be positive")
	}
	if len(b.SlotTimes) == 0 {
		return fmt.Errorf("booking config: slot_times is empty")
	}
	for _, s := range b.SlotTimes {
		if _, err := time.Parse("15:04", s); err != nil {
			return fmt.Errorf("booking config: invalid slot time %q", s)
		}
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return fmt.Errorf("booking config: invalid timezone %q", b.Timezone)
	}
	return nil
}

func (b Booking) HasSlot(hm string) bool {
	for _, s := range b.SlotTimes {
		if s == hm {
			return true
		}
	}
	return false
}
