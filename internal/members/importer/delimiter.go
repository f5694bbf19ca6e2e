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

import "strings"

const delimiterSampleLines = 10

// candidateDelimiters is the ordered list of delimiters the detector
// considers. Order breaks ties: an empty or ambiguous sample falls back to
// the semicolon, the delimiter the common spreadsheet exports use.
var candidateDelimiters = []rune{';', '\t', ','}

// DetectDelimiter counts candidate delimiter occurrences in the first few
// lines of the raw content and returns the most frequent one. A full tie or
// an empty sample yields the semicolon.
func DetectDelimiter(content string) rune {

	lines := splitLines(content)
	if len(lines) > delimiterSampleLines {
		lines = lines[:delimiterSampleLines]
	}
	sample := strings.Join(lines, "\n")

	best := ';'
	bestCount := 0
	for _, d := range candidateDelimiters {
		count := strings.Count(sample, string(d))
		if count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best
}

// splitLines splits raw content on LF, tolerating CRLF endings.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
