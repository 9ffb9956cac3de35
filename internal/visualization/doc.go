// Package visualization renders the chart set for a cleaned student table:
// a study-hours versus performance scatter, histograms with mean and median
// markers, engagement bars, boxplots and stacked completion breakdowns.
//
// Charts are rendered concurrently and written as PNG files.
package visualization
