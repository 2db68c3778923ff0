package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[Register]RegisterInfo)
	registryMu sync.RWMutex
)

func init() {
	Define(RegisterInfo{
		Key:         Recipients,
		Title:       "كشف المستلمين للبطاقات",
		TabLabel:    "كشف المستلمين للبطاقات",
		FileName:    "Recipients_List.xlsx",
		Orientation: Landscape,
		Columns: []ColumnDef{
			{Header: HeaderSeq, Width: 5},
			{Header: HeaderRecipientName, Width: 35, Field: RecipientName.String()},
			{Header: HeaderDepartment, Width: 25, Field: RecipientDepartment.String()},
			{Header: HeaderReceiptDate, Width: 15, Field: RecipientReceiptDate.String()},
			{Header: HeaderCardType, Width: 15, Field: RecipientCardType.String()},
			{Header: HeaderCardNumber, Width: 20, Field: RecipientCardNumber.String()},
			{Header: HeaderCardCode, Width: 15, Field: RecipientCardCode.String()},
			{Header: HeaderDuration, Width: 15, Field: RecipientDuration.String()},
			{Header: HeaderAttachment, Width: 20},
			{Header: HeaderNotes, Width: 50, Field: RecipientNotes.String()},
		},
	})

	Define(RegisterInfo{
		Key:         ActiveCards,
		Title:       "بطاقات الزوار الفعالة",
		TabLabel:    "بطاقات الزوار الفعالة",
		FileName:    "Active_Cards.xlsx",
		Orientation: Portrait,
		Columns: []ColumnDef{
			{Header: HeaderSeq, Width: 5},
			{Header: HeaderCardType, Width: 30, Field: ActiveCardType.String()},
			{Header: HeaderCardNumber, Width: 30, Field: ActiveCardNumber.String()},
			{Header: HeaderCardCode, Width: 25, Field: ActiveCardCode.String()},
			{Header: HeaderAttachment, Width: 25},
			{Header: HeaderNotes, Width: 60, Field: ActiveCardNotes.String()},
		},
	})
}

// Define adds a register definition.
// Panics if the register is already defined.
func Define(info RegisterInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[info.Key]; exists {
		panic(fmt.Sprintf("register already defined: %s", info.Key))
	}
	registry[info.Key] = info
}

// Info returns the definition of a register.
func Info(key Register) (RegisterInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	info, ok := registry[key]
	return info, ok
}

// MustInfo is Info for registers known at compile time.
func MustInfo(key Register) RegisterInfo {
	info, ok := Info(key)
	if !ok {
		panic(fmt.Sprintf("register not defined: %s", key))
	}
	return info
}

// Registers returns all definitions with the default tab first,
// then by key.
func Registers() []RegisterInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]RegisterInfo, 0, len(registry))
	for _, info := range registry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Key == DefaultRegister) != (out[j].Key == DefaultRegister) {
			return out[i].Key == DefaultRegister
		}
		return out[i].Key < out[j].Key
	})
	return out
}
