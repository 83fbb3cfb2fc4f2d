package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/nocops-dev/rota-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleOperator,
	domain.RoleShiftLead,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var startingShifts = []string{"1", "2", "3"}

// 随机生成一个员工，小部分员工的初始班次缺失或者不合法，模拟真实导入数据的质量
func GenerateRandomEmployee(number string) *domain.Employee {
	emp := &domain.Employee{
		Number:   number,
		FullName: GenerateRandomChineseName(),
		Gender:   []string{"男", "女"}[rand.Intn(2)],
		IsActive: true,
	}

	switch rand.Intn(10) {
	case 0:
		emp.StartingShift = ""
	case 1:
		emp.StartingShift = GenerateRandomID(1, 1)
	default:
		emp.StartingShift = startingShifts[rand.Intn(len(startingShifts))]
	}

	return emp
}

// 随机生成一个排班计划，起始日期在未来一周内，覆盖 4~8 周
func GenerateRandomRotaPlan() *domain.RotaPlan {
	start := time.Now().AddDate(0, 0, rand.Intn(7)+1).Truncate(24 * time.Hour)
	weeks := rand.Intn(5) + 4

	return &domain.RotaPlan{
		Name:        "排班计划" + GenerateRandomID(3, 3),
		Description: "排班计划描述" + GenerateRandomID(20, 10),
		StartDate:   start,
		StopDate:    start.AddDate(0, 0, weeks*7-1),
	}
}
