// Package main runs the Melita Bakes web site: a public page listing cakes,
// business hours, testimonials and contact details, and an admin dashboard
// to edit them. Content lives in a gorm database (mysql, postgres or sqlite),
// images in an S3 compatible bucket or on local disk.
package main
