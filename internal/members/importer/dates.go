/*
 * Copyright (c) 2025, ClubAccess.
 *
 * ClubAccess licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// serialEpochFloor is 1970-01-01 expressed as a spreadsheet date serial
// (days since 1899-12-30). Serials below it are treated as implausible.
const serialEpochFloor = 25569

const secondsPerDay = 86400

// dateStrategy is one named parser in the coercion chain. It reports absence
// instead of failing; the chain never returns an error.
type dateStrategy struct {
	name  string
	parse func(s string) (string, bool)
}

// dateStrategies is the ordered coercion chain for date-valued cells.
var dateStrategies = []dateStrategy{
	{name: "day-month-year", parse: parseDayMonthYear},
	{name: "compact-digits", parse: parseCompactDigits},
	{name: "spreadsheet-serial", parse: parseSpreadsheetSerial},
}

// CoerceDate normalizes a raw cell to YYYY-MM-DD. Placeholder values and
// anything no strategy recognizes yield absence; coercion never aborts a row.
func CoerceDate(raw string) (string, bool) {

	s := strings.TrimSpace(raw)
	if s == "" || s == "-" || s == "0" {
		return "", false
	}

	for _, strategy := range dateStrategies {
		if v, ok := strategy.parse(s); ok {
			return v, true
		}
	}
	return "", false
}

// parseDayMonthYear handles D/M/Y and D-M-Y with a 2- or 4-digit year.
// Two-digit years are assumed to be in the 2000s.
func parseDayMonthYear(s string) (string, bool) {

	var parts []string
	switch {
	case strings.Contains(s, "/"):
		parts = strings.Split(s, "/")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		return "", false
	}
	if len(parts) != 3 {
		return "", false
	}

	day := strings.TrimSpace(parts[0])
	month := strings.TrimSpace(parts[1])
	year := strings.TrimSpace(parts[2])
	if len(year) == 2 && allDigits(year) {
		year = "20" + year
	}
	if !allDigits(day) || !allDigits(month) || !allDigits(year) {
		return "", false
	}
	if len(day) > 2 || len(month) > 2 || len(year) != 4 {
		return "", false
	}

	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d), true
}

// parseCompactDigits handles an unbroken 8-digit DDMMYYYY string.
func parseCompactDigits(s string) (string, bool) {

	if len(s) != 8 || !allDigits(s) {
		return "", false
	}
	day, _ := strconv.Atoi(s[0:2])
	month, _ := strconv.Atoi(s[2:4])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", s[4:8], s[2:4], s[0:2]), true
}

// parseSpreadsheetSerial handles a numeric date serial counted in days since
// 1899-12-30, as produced by spreadsheet exports. Serials before 1970-01-01
// are rejected as implausible.
func parseSpreadsheetSerial(s string) (string, bool) {

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < serialEpochFloor {
		return "", false
	}

	seconds := int64((serial - serialEpochFloor) * secondsPerDay)
	t := time.Unix(seconds, 0).UTC()
	return t.Format("2006-01-02"), true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
