// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-sheets-votes publishes the rows of a Google Sheets worksheet as JSON and records
votes against them.

The worksheet is read either from the public CSV export or, if a Google credential is configured,
through the Sheets API. Rows with a blank second column are discarded. Votes increment a counter
cell in the same row of the worksheet.

uhppoted-app-sheets-votes supports the following commands:

  - run, to serve the GET /api/sheets and POST /api/vote HTTP API
  - get, to download the filtered worksheet records as a JSON or TSV file
  - vote, to record a single vote from the command line
  - version, to display the current version
*/
package sheets
