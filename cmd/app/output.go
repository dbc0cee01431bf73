package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

func printJSON(v any) error {
	b, err := jsonMarshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func printCheckInStatuses(items []domain.CheckInStatus) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{int64ToString(item.UserID), item.Status})
	}
	printTable([]string{"USER_ID", "STATUS"}, rows)
}

func printRoleGroups(groups []domain.RoleGroup) {
	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		for _, user := range group.Users {
			rows = append(rows, []string{group.Role, int64ToString(user.ID), user.Name})
		}
	}
	printTable([]string{"ROLE", "USER_ID", "NAME"}, rows)
}

func printSocialUsers(items []domain.SocialUser) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			item.Email,
			int64ToString(item.Age),
			item.Gender,
		})
	}
	printTable([]string{"ID", "NAME", "EMAIL", "AGE", "GENDER"}, rows)
}

func printDirectoryUsers(items []domain.DirectoryUser) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			uintToString(item.ID),
			item.Name,
			item.Email,
			strconv.Itoa(item.Age),
			item.Gender,
		})
	}
	printTable([]string{"ID", "NAME", "EMAIL", "AGE", "GENDER"}, rows)
}
